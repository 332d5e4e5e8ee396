package ui

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphaelgruber/gemchat/internal/api"
	"github.com/raphaelgruber/gemchat/internal/models"
	"github.com/raphaelgruber/gemchat/internal/validate"
)

// resendCooldown is how long the resend option stays locked after a send.
const resendCooldown = 30

type authStep int

const (
	stepPhone authStep = iota
	stepOTP
)

type (
	countriesMsg struct {
		countries []models.Country
		err       error
	}

	otpSentMsg struct {
		challenge *api.OTPChallenge
		resend    bool
		err       error
	}

	otpVerifiedMsg struct {
		user *models.User
		err  error
	}

	resendTickMsg struct{}
)

// authModel drives the two-step phone/OTP flow. Draft values mirror into
// the session store as they change; only a successful verification logs in.
type authModel struct {
	deps Deps

	step authStep

	countries        []models.Country
	countryIdx       int
	loadingCountries bool

	phone textinput.Model
	otp   textinput.Model

	errs       map[string]string
	sending    bool
	verifying  bool
	challenge  *api.OTPChallenge
	resendLeft int
}

func newAuthModel(deps Deps) authModel {
	phone := textinput.New()
	phone.Placeholder = "Phone number"
	phone.CharLimit = 15
	phone.Focus()

	otp := textinput.New()
	otp.Placeholder = "6-digit code"
	otp.CharLimit = 6

	return authModel{
		deps:             deps,
		phone:            phone,
		otp:              otp,
		loadingCountries: true,
	}
}

func (m authModel) init() tea.Cmd {
	return m.fetchCountries()
}

// fetchCountries loads the dialing-code list from the mock backend.
// Runs as a command to keep the artificial latency off the event loop.
func (m authModel) fetchCountries() tea.Cmd {
	svc := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		countries, err := svc.Countries(ctx)
		return countriesMsg{countries: countries, err: err}
	}
}

func (m authModel) sendOTP(resend bool) tea.Cmd {
	svc := m.deps.API
	phone := m.deps.Session.PhoneNumber()
	cc := m.deps.Session.CountryCode()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		challenge, err := svc.SendOTP(ctx, phone, cc)
		return otpSentMsg{challenge: challenge, resend: resend, err: err}
	}
}

func (m authModel) verifyOTP(code string) tea.Cmd {
	svc := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		user, err := svc.VerifyOTP(ctx, code)
		return otpVerifiedMsg{user: user, err: err}
	}
}

func resendTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return resendTickMsg{}
	})
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case countriesMsg:
		m.loadingCountries = false
		if msg.err != nil {
			m.deps.Logger.Warn("failed to fetch countries", "error", msg.err)
			return m, statusCmd("Failed to load countries", true)
		}
		m.countries = msg.countries
		for i, c := range m.countries {
			if c.DialCode == m.deps.Session.CountryCode() {
				m.countryIdx = i
				break
			}
		}
		return m, nil

	case otpSentMsg:
		m.sending = false
		if msg.err != nil {
			m.deps.Logger.Warn("failed to send OTP", "error", msg.err)
			return m, statusCmd("Failed to send OTP", true)
		}
		m.deps.Session.SetOTPSent(true)
		m.challenge = msg.challenge
		m.resendLeft = resendCooldown
		notice := "OTP sent successfully!"
		if msg.resend {
			notice = "OTP resent successfully!"
		}
		if m.step == stepPhone {
			m.step = stepOTP
			m.phone.Blur()
			m.otp.Focus()
		}
		return m, tea.Batch(resendTick(), statusCmd(notice, false))

	case otpVerifiedMsg:
		m.verifying = false
		if msg.err != nil {
			m.errs = map[string]string{"Code": "Invalid OTP. Please try again."}
			m.otp.SetValue("")
			return m, nil
		}
		m.deps.Session.SetOTPVerified(true)
		m.deps.Session.Login(*msg.user)
		return m, tea.Batch(
			func() tea.Msg { return authenticatedMsg{} },
			statusCmd("Welcome to Gemini Chat!", false),
		)

	case resendTickMsg:
		if m.step == stepOTP && m.resendLeft > 0 {
			m.resendLeft--
			if m.resendLeft > 0 {
				return m, resendTick()
			}
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.step == stepPhone {
			return m.updatePhoneStep(msg)
		}
		return m.updateOTPStep(msg)
	}

	return m, nil
}

func (m authModel) updatePhoneStep(msg tea.KeyPressMsg) (authModel, tea.Cmd) {
	switch msg.String() {
	case "up", "down":
		if len(m.countries) == 0 {
			return m, nil
		}
		if msg.String() == "up" {
			m.countryIdx = (m.countryIdx - 1 + len(m.countries)) % len(m.countries)
		} else {
			m.countryIdx = (m.countryIdx + 1) % len(m.countries)
		}
		m.deps.Session.SetCountryCode(m.countries[m.countryIdx].DialCode)
		return m, nil

	case "enter":
		if m.sending {
			return m, nil
		}
		input := validate.PhoneInput{
			CountryCode: m.deps.Session.CountryCode(),
			PhoneNumber: m.phone.Value(),
		}
		if errs := validate.Check(input); len(errs) > 0 {
			m.errs = errs
			return m, nil
		}
		m.errs = nil
		m.sending = true
		m.deps.Session.SetPhoneNumber(m.phone.Value())
		return m, m.sendOTP(false)
	}

	var cmd tea.Cmd
	m.phone, cmd = m.phone.Update(msg)
	m.deps.Session.SetPhoneNumber(m.phone.Value())
	return m, cmd
}

func (m authModel) updateOTPStep(msg tea.KeyPressMsg) (authModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Back out to phone entry; authentication state is untouched.
		m.deps.Session.ResetAuth()
		m.step = stepPhone
		m.challenge = nil
		m.errs = nil
		m.resendLeft = 0
		m.otp.SetValue("")
		m.otp.Blur()
		m.phone.SetValue("")
		m.phone.Focus()
		return m, nil

	case "ctrl+r":
		if m.resendLeft > 0 || m.sending {
			return m, nil
		}
		m.sending = true
		return m, m.sendOTP(true)

	case "enter":
		if m.verifying {
			return m, nil
		}
		if errs := validate.Check(validate.OTPInput{Code: m.otp.Value()}); len(errs) > 0 {
			m.errs = errs
			return m, nil
		}
		m.errs = nil
		m.verifying = true
		return m, m.verifyOTP(m.otp.Value())
	}

	var cmd tea.Cmd
	m.otp, cmd = m.otp.Update(msg)
	return m, cmd
}

func (m authModel) View(theme Theme, width int) string {
	title := theme.titleStyle().Render("Gemini Chat")
	out := title + "\n\n"

	if m.step == stepPhone {
		out += theme.textStyle().Render("Sign in with your phone number") + "\n\n"
		out += m.countryLine(theme) + "\n"
		out += m.phone.View() + "\n"
		out += m.fieldError(theme, "CountryCode")
		out += m.fieldError(theme, "PhoneNumber")
		if m.sending {
			out += theme.hintStyle().Render("Sending OTP…") + "\n"
		} else {
			out += theme.hintStyle().Render("↑/↓ change country · enter send OTP · ctrl+c quit") + "\n"
		}
		return out
	}

	out += theme.textStyle().Render("Enter the code sent to "+m.challengePhone()) + "\n\n"
	out += m.otp.View() + "\n"
	out += m.fieldError(theme, "Code")
	if m.challenge != nil {
		// Mock delivery: the code is surfaced right here instead of by SMS.
		out += theme.hintStyle().Render(fmt.Sprintf("(mock SMS: your code is %s)", m.challenge.Code)) + "\n"
	}
	if m.verifying {
		out += theme.hintStyle().Render("Verifying…") + "\n"
	} else if m.resendLeft > 0 {
		out += theme.hintStyle().Render(fmt.Sprintf("Resend available in %ds · esc back", m.resendLeft)) + "\n"
	} else {
		out += theme.hintStyle().Render("ctrl+r resend · esc back") + "\n"
	}
	return out
}

func (m authModel) challengePhone() string {
	if m.challenge != nil {
		return m.challenge.Phone
	}
	return m.deps.Session.CountryCode() + m.deps.Session.PhoneNumber()
}

func (m authModel) countryLine(theme Theme) string {
	if m.loadingCountries {
		return theme.hintStyle().Render("Loading countries…")
	}
	if len(m.countries) == 0 {
		return theme.hintStyle().Render("Country: " + m.deps.Session.CountryCode())
	}
	c := m.countries[m.countryIdx]
	return theme.selectedStyle().Render(fmt.Sprintf("%s %s (%s)", c.Flag, c.Name, c.DialCode))
}

func (m authModel) fieldError(theme Theme, field string) string {
	if msg, ok := m.errs[field]; ok {
		return theme.errorStyle().Render(msg) + "\n"
	}
	return ""
}
