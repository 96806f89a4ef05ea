package handlers

// User-facing message catalog. The product launched Japanese-first, so ja is
// the canonical copy and en mirrors it.
var messages = map[string]map[string]string{
	"ja": {
		"no_file":          "画像ファイルがアップロードされていません。",
		"unsupported_type": "対応していない画像形式です。JPEG または PNG をアップロードしてください。",
		"too_large":        "画像ファイルが大きすぎます。10MB 以下のファイルをアップロードしてください。",
		"upload_error":     "アップロード処理中にエラーが発生しました。",
		"upload_accepted":  "画像をアップロードしました。AI生成を開始します。",
		"processing":       "まだ生成中です。しばらくしてから再度お試しください。",
		"generation_error": "AI生成中にエラーが発生しました。",
		"not_found":        "リクエストされたリソースが見つかりません。",
		"internal":         "サーバー内部エラーが発生しました。",
	},
	"en": {
		"no_file":          "No image file was uploaded.",
		"unsupported_type": "Unsupported image format. Please upload a JPEG or PNG.",
		"too_large":        "The image file is too large. Please upload a file of 10MB or less.",
		"upload_error":     "An error occurred while processing the upload.",
		"upload_accepted":  "Image uploaded. Starting AI generation.",
		"processing":       "Still generating. Please try again shortly.",
		"generation_error": "An error occurred during AI generation.",
		"not_found":        "The requested resource was not found.",
		"internal":         "An internal server error occurred.",
	},
}

func message(locale, key string) string {
	if catalog, ok := messages[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := messages["en"][key]; ok {
		return msg
	}
	return key
}
