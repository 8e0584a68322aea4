package mail

import (
	"errors"

	emailverifier "github.com/AfterShip/email-verifier"
)

// 通知邮箱校验，创建提醒时用于挡住明显写错的地址

type Verifier struct {
	verifier  *emailverifier.Verifier
	smtpCheck bool
}

func NewVerifier(smtpCheck bool) *Verifier {
	v := emailverifier.NewVerifier().DisableCatchAllCheck()
	if smtpCheck {
		v = v.EnableSMTPCheck()
	}
	return &Verifier{verifier: v, smtpCheck: smtpCheck}
}

func (v *Verifier) VerifyEmail(email string) error {
	ret, err := v.verifier.Verify(email)
	if err != nil {
		return err
	}
	if !ret.Syntax.Valid {
		return errors.New("email address syntax is invalid")
	}
	if v.smtpCheck && ret.SMTP != nil && !ret.SMTP.Deliverable {
		return errors.New("email address not deliverable")
	}
	return nil
}
