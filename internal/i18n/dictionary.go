package i18n

// dictionary holds the fixed UI strings shown around lessons and quizzes
var dictionary = map[string]Text{
	"app.title":         {English: "Digital Seekho", Urdu: "ڈیجیٹل سیکھو"},
	"levels.heading":    {English: "Your levels", Urdu: "آپ کے لیولز"},
	"level.progress":    {English: "complete", Urdu: "مکمل"},
	"points":            {English: "Points", Urdu: "پوائنٹس"},
	"badges":            {English: "Badges", Urdu: "بیجز"},
	"badges.none":       {English: "No badges yet", Urdu: "ابھی تک کوئی بیج نہیں"},
	"badge.earned":      {English: "New badge earned!", Urdu: "نیا بیج مل گیا!"},
	"step.continue":     {English: "Press Enter to continue", Urdu: "آگے بڑھنے کے لیے Enter دبائیں"},
	"quiz.start":        {English: "Quiz time!", Urdu: "کوئز کا وقت!"},
	"quiz.question":     {English: "Question", Urdu: "سوال"},
	"quiz.true":         {English: "True", Urdu: "صحیح"},
	"quiz.false":        {English: "False", Urdu: "غلط"},
	"quiz.answer.tf":    {English: "Type t for true or f for false", Urdu: "صحیح کے لیے t اور غلط کے لیے f لکھیں"},
	"quiz.answer.mc":    {English: "Type the number of your answer", Urdu: "اپنے جواب کا نمبر لکھیں"},
	"quiz.answer.match": {English: "Type the number that matches", Urdu: "ملتا ہوا نمبر لکھیں"},
	"quiz.invalid":      {English: "Please enter a valid choice", Urdu: "براہ کرم درست انتخاب کریں"},
	"quiz.correct":      {English: "Correct!", Urdu: "درست!"},
	"quiz.incorrect":    {English: "Not quite.", Urdu: "درست نہیں۔"},
	"quiz.score":        {English: "Your score", Urdu: "آپ کا اسکور"},
	"quiz.passed":       {English: "Well done, you passed!", Urdu: "شاباش، آپ پاس ہو گئے!"},
	"quiz.failed":       {English: "Keep practising and try again.", Urdu: "مشق جاری رکھیں اور دوبارہ کوشش کریں۔"},
	"lesson.next":       {English: "Next lesson", Urdu: "اگلا سبق"},
	"lesson.done":       {English: "Lesson complete", Urdu: "سبق مکمل"},
	"lesson.notfound":   {English: "Lesson not found", Urdu: "سبق نہیں ملا"},
	"lesson.level_done": {English: "You finished every lesson in this level", Urdu: "آپ نے اس لیول کے تمام اسباق مکمل کر لیے"},
}

// Lookup returns the UI string for key in the given mode.
// Unknown keys are returned unchanged so missing entries are visible but harmless.
func Lookup(key string, mode Mode) string {
	text, ok := dictionary[key]
	if !ok {
		return key
	}
	return T(text, mode)
}
