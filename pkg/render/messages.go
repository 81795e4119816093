package render

import "fmt"

// Banner and error list texts shown around the submit button.
const (
	SuccessMessage     = "Success! Your message has been sent. We'll contact you within 24 hours."
	DeliveryFailure    = "Something went wrong. Please try again."
	ErrorsListHeader   = "Please fix the following errors:"
	singleErrorSummary = "Please fix the error below to submit the form."
)

// Summary returns the error banner text for count failing checks.
func Summary(count int) string {
	if count == 1 {
		return singleErrorSummary
	}
	return fmt.Sprintf("Please fix %d errors below to submit the form.", count)
}
