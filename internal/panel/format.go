package panel

import (
	"strconv"
	"time"

	"gizindir-panel/internal/models"
)

const (
	dash         = "-"
	unknownUser  = "Bilinmeyen"
	timeLayout   = "02.01.2006 15:04:05"
	dateLayout   = "02.01.2006"
	inputDateFmt = "2006-01-02"
)

func text(s *string) string {
	if s == nil || *s == "" {
		return dash
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Evet"
	}
	return "Hayır"
}

func tristate(b *bool) string {
	if b == nil {
		return dash
	}
	return yesNo(*b)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return dash
	}
	return t.Local().Format(timeLayout)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return dash
	}
	return t.Format(dateLayout)
}

func userLabel(u *models.User) string {
	if name := u.DisplayName(); name != "" {
		return name
	}
	return unknownUser
}

func formatID(n int64) string {
	return strconv.FormatInt(n, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
