package handlers

// messages holds the user-facing strings per locale. Keys double as the
// stable error codes used by the API.
var messages = map[string]map[string]string{
	"bad_request": {
		"en": "The request payload could not be parsed.",
		"ar": "تعذر قراءة الطلب.",
	},
	"no_prompt": {
		"en": "Please enter a prompt before generating.",
		"ar": "الرجاء إدخال وصف قبل التوليد.",
	},
	"busy": {
		"en": "A request is already in progress. Please wait for it to finish.",
		"ar": "هناك طلب قيد التنفيذ بالفعل. الرجاء الانتظار حتى يكتمل.",
	},
	"generation_failed": {
		"en": "Image generation failed. Please try again.",
		"ar": "فشل توليد الصورة. الرجاء المحاولة مرة أخرى.",
	},
	"understanding_failed": {
		"en": "Image analysis failed. Please try again.",
		"ar": "فشل تحليل الصورة. الرجاء المحاولة مرة أخرى.",
	},
	"no_image": {
		"en": "Please upload an image first.",
		"ar": "الرجاء رفع صورة أولاً.",
	},
	"no_result": {
		"en": "No generated image is available yet.",
		"ar": "لا توجد صورة مولدة بعد.",
	},
	"load_failed": {
		"en": "The image could not be loaded for compositing.",
		"ar": "تعذر تحميل الصورة لإضافة النص.",
	},
	"payload_too_large": {
		"en": "The uploaded file is too large.",
		"ar": "الملف المرفوع كبير جدًا.",
	},
	"translation_notice": {
		"en": "Translation failed; the original prompt was used.",
		"ar": "فشلت الترجمة؛ تم استخدام النص الأصلي.",
	},
}

func localize(key, locale string) string {
	byLocale, ok := messages[key]
	if !ok {
		return key
	}
	if msg, ok := byLocale[locale]; ok {
		return msg
	}
	return byLocale["en"]
}
