package models

// Specializations — фиксированный список специализаций анкеты.
var Specializations = []string{
	"Frontend",
	"Backend",
	"Full Stack",
	"QA",
	"DevOps",
	"PM",
	"Designer",
	"Mobile Dev",
}

// ExperienceBuckets — допустимые значения опыта коммерческой разработки.
var ExperienceBuckets = []string{"0-1", "1-3", "3-5", "5+"}

// IsValidSpecialization проверяет вхождение в список специализаций.
func IsValidSpecialization(spec string) bool {
	for _, s := range Specializations {
		if s == spec {
			return true
		}
	}
	return false
}

// IsValidExperience проверяет вхождение в список градаций опыта.
func IsValidExperience(exp string) bool {
	for _, e := range ExperienceBuckets {
		if e == exp {
			return true
		}
	}
	return false
}
