package repository

import (
	"regexp"
	"strings"
	"time"

	"clinic-core/internal/modules/patients/dto"
	"clinic-core/internal/shared/utils"

	"go.mongodb.org/mongo-driver/bson"
)

var nonDigits = regexp.MustCompile(`\D`)

// BuildSearchFilter turns normalized search parameters into a Mongo filter:
// a conjunction of $text search, gender equality, and a birth-date window
// derived from the inclusive age range. Patients without a birth date never
// match an age-filtered search.
func BuildSearchFilter(params dto.SearchParams, now time.Time) bson.M {
	filter := bson.M{}

	if params.Query != "" {
		filter["$text"] = bson.M{"$search": params.Query}
	}

	if params.Gender != "" {
		filter["gender"] = params.Gender
	}

	if params.AgeMin >= 0 || params.AgeMax >= 0 {
		from, to := utils.BirthDateWindow(params.AgeMin, params.AgeMax, now)

		window := bson.M{}
		if !from.IsZero() {
			window["$gt"] = from
		}
		if !to.IsZero() {
			window["$lte"] = to
		}
		filter["birthDate"] = window
	}

	return filter
}

// BuildPhoneFilter matches a phone number loosely: the digits of the input
// must appear in order, with any formatting characters between them.
func BuildPhoneFilter(phone string) bson.M {
	digits := nonDigits.ReplaceAllString(phone, "")
	if digits == "" {
		// Nothing to match on; an impossible filter keeps the call total.
		return bson.M{"_id": nil}
	}

	parts := strings.Split(digits, "")
	pattern := strings.Join(parts, `[^0-9]*`)

	return bson.M{"phone": bson.M{"$regex": pattern}}
}
