package domain

// Category is the kind of recipient chosen at the start of a session
type Category string

const (
	CategoryMaleFriend       Category = "male_friend"
	CategoryFemaleFriend     Category = "female_friend"
	CategoryUniversityJunior Category = "university_junior"
	CategoryStudent          Category = "student"
)

// Categories lists the selectable categories in menu order
var Categories = []Category{
	CategoryMaleFriend,
	CategoryFemaleFriend,
	CategoryUniversityJunior,
	CategoryStudent,
}

// Gender of the recipient
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// BirthdaySession is the data collected by one guided conversation
type BirthdaySession struct {
	OperatorID int64
	Category   Category
	Gender     Gender
	Name       string
	DOBText    string
	AgeText    string
	Photos     []string
	AudioID    string
	CustomText string
}
