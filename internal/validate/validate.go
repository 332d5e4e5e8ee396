// Package validate checks user input before it reaches the stores or the
// mock services. Failures map to inline, per-field messages.
package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	dialCodeRe = regexp.MustCompile(`^\+\d{1,4}$`)
	phoneRe    = regexp.MustCompile(`^\d{10,15}$`)
	otpRe      = regexp.MustCompile(`^\d{6}$`)
)

var validate = func() *validator.Validate {
	v := validator.New()
	must(v.RegisterValidation("dial_code", regexpRule(dialCodeRe)))
	must(v.RegisterValidation("phone_local", regexpRule(phoneRe)))
	must(v.RegisterValidation("otp_code", regexpRule(otpRe)))
	return v
}()

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func regexpRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// PhoneInput is the phone-entry form.
type PhoneInput struct {
	CountryCode string `validate:"required,dial_code"`
	PhoneNumber string `validate:"required,phone_local"`
}

// OTPInput is the code-entry form.
type OTPInput struct {
	Code string `validate:"required,otp_code"`
}

// ChatroomInput is the create-chatroom form.
type ChatroomInput struct {
	Title string `validate:"required,min=1,max=50"`
}

// MessageInput is an outgoing text message.
type MessageInput struct {
	Content string `validate:"required,min=1,max=2000"`
}

// messages maps Field|tag to the inline message shown next to the field.
var messages = map[string]string{
	"CountryCode|required":    "Country code is required",
	"CountryCode|dial_code":   "Please select a valid country code",
	"PhoneNumber|required":    "Phone number is required",
	"PhoneNumber|phone_local": "Phone number must be 10-15 digits",
	"Code|required":           "OTP is required",
	"Code|otp_code":           "OTP must be 6 digits",
	"Title|required":          "Chatroom title is required",
	"Title|min":               "Chatroom title cannot be empty",
	"Title|max":               "Chatroom title must be less than 50 characters",
	"Content|required":        "Message content is required",
	"Content|min":             "Message cannot be empty",
	"Content|max":             "Message must be less than 2000 characters",
}

// Check validates a form struct and returns inline messages keyed by field
// name. An empty map means the input is valid.
func Check(input any) map[string]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"|"+fe.Tag()]
		if !ok {
			msg = "Invalid " + strings.ToLower(fe.Field())
		}
		out[fe.Field()] = msg
	}
	return out
}
