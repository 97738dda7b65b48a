package consts

const (
	MoodMin = 1
	MoodMax = 5
)

const (
	HabitNameMaxLen = 100
	NoteMaxLen      = 2000
)

const (
	DefaultListDays = 30
	MaxListDays     = 90
)

const (
	ExportObjectPrefix   = "exports/"
	ExportContentType    = "application/json"
	DefaultPresignMinute = 15
)
