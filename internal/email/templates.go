package email

// Default notification bodies. The variable names match the maps passed to
// Send by the customer service.
const (
	ForgotPasswordTemplate = `Hello,

A password reset was requested for your account. Use the link below to
choose a new password:

{{.resetPasswordUrl}}

If the link does not work, enter this token on the reset page: {{.token}}

If you did not request a reset, you can ignore this message.
`

	ForgotUsernameTemplate = `Hello,

You asked us to remind you of your username. It is:

{{.username}}

If you did not request this, you can ignore this message.
`

	RegistrationTemplate = `Hello {{.username}},

Welcome! Your account has been created. You can sign in with your
username at any time.
`

	ChangePasswordTemplate = `Hello {{.username}},

The password on your account was just changed. If this was not you,
reset your password immediately and contact support.
`
)
