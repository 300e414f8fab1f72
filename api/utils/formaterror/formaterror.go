package formaterror

import (
	"strings"
)

// FormatError turns driver and auth errors into the field keyed messages the
// forms display.
func FormatError(err string) map[string]string {
	errList := map[string]string{}
	lower := strings.ToLower(err)

	if strings.Contains(lower, "username") && isDuplicate(lower) {
		errList["Taken_username"] = "Username Already Taken"
	}
	if strings.Contains(lower, "email") && isDuplicate(lower) {
		errList["Taken_email"] = "Email Already Taken"
	}
	if strings.Contains(lower, "slug") && isDuplicate(lower) {
		errList["Taken_slug"] = "Slug Already Taken"
	}
	if strings.Contains(lower, "hashedpassword") {
		errList["Incorrect_password"] = "Incorrect Password"
	}
	if strings.Contains(lower, "record not found") {
		errList["No_record"] = "No Record Found"
	}
	if len(errList) == 0 {
		errList["Incorrect_details"] = "Incorrect Details"
	}
	return errList
}

func isDuplicate(lower string) bool {
	return strings.Contains(lower, "unique") || strings.Contains(lower, "duplicate")
}
