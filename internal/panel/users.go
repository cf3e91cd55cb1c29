package panel

import (
	"context"
	"net/url"

	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/models"
)

// UserService is the user surface behind the users page
type UserService = handlers.Service[models.User, models.CreateUserInput, models.UpdateUserInput]

var (
	genderOptions = []Option{
		{Value: "", Label: "Seçiniz"},
		{Value: "male", Label: "Erkek"},
		{Value: "female", Label: "Kadın"},
		{Value: "other", Label: "Diğer"},
	}
	interestedInOptions = []Option{
		{Value: "", Label: "Seçiniz"},
		{Value: "male", Label: "Erkek"},
		{Value: "female", Label: "Kadın"},
		{Value: "both", Label: "Her ikisi"},
	}
)

type userResource struct {
	users UserService
}

func (userResource) entity() handlers.Entity { return handlers.UserEntity }

func (userResource) labels() Labels {
	return Labels{
		Title:   "Kullanıcılar",
		New:     "Yeni Kullanıcı",
		Edit:    "Kullanıcı Düzenle",
		Columns: []string{"ID", "Kullanıcı Adı", "E-posta", "Tam Ad", "Cinsiyet", "İlgi Alanı", "Oluşturulma Tarihi"},
		Confirm: "Bu kullanıcıyı silmek istediğinize emin misiniz?",
	}
}

func (r userResource) rows(ctx context.Context) ([]Row, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, Row{
			ID: u.ID,
			Cells: []string{
				formatID(u.ID), text(u.Name), u.Email, text(u.FullName),
				text(u.Gender), text(u.InterestedIn), formatTime(u.CreatedAt),
			},
		})
	}
	return rows, nil
}

func (r userResource) fields(ctx context.Context, id int64) ([]Field, error) {
	var u models.User
	if id != 0 {
		found, err := r.users.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		u = *found
	}

	password := Field{Name: "password", Label: "Şifre", Type: "password", Required: id == 0}
	if id != 0 {
		password.Hint = "Boş bırakılırsa değişmez"
	}

	birthDate := ""
	if u.BirthDate != nil {
		birthDate = u.BirthDate.Format(inputDateFmt)
	}

	return []Field{
		{Name: "name", Label: "Kullanıcı Adı", Type: "text", Value: deref(u.Name)},
		{Name: "email", Label: "E-posta", Type: "email", Value: u.Email, Required: true},
		password,
		{Name: "full_name", Label: "Tam Ad", Type: "text", Value: deref(u.FullName)},
		{Name: "gender", Label: "Cinsiyet", Type: "select", Value: deref(u.Gender), Options: genderOptions},
		{Name: "interested_in", Label: "İlgi Alanı", Type: "select", Value: deref(u.InterestedIn), Options: interestedInOptions},
		{Name: "birth_date", Label: "Doğum Tarihi", Type: "date", Value: birthDate},
		{Name: "bio", Label: "Biyografi", Type: "textarea", Value: deref(u.Bio)},
		{Name: "profile_image_url", Label: "Profil Resmi URL", Type: "text", Value: deref(u.ProfileImageURL)},
	}, nil
}

func (r userResource) submit(ctx context.Context, id int64, values url.Values) error {
	birthDate, err := dateField(values, "birth_date")
	if err != nil {
		return err
	}

	if id == 0 {
		in := &models.CreateUserInput{
			Name:            optString(values, "name"),
			Email:           values.Get("email"),
			Password:        values.Get("password"),
			FullName:        optString(values, "full_name"),
			Gender:          optString(values, "gender"),
			InterestedIn:    optString(values, "interested_in"),
			BirthDate:       birthDate.Value,
			Bio:             optString(values, "bio"),
			ProfileImageURL: optString(values, "profile_image_url"),
		}
		_, err := r.users.Create(ctx, in)
		return err
	}

	in := &models.UpdateUserInput{
		Name:            optField(values, "name"),
		Email:           requiredField(values, "email"),
		Password:        requiredField(values, "password"),
		FullName:        optField(values, "full_name"),
		Gender:          optField(values, "gender"),
		InterestedIn:    optField(values, "interested_in"),
		BirthDate:       birthDate,
		Bio:             optField(values, "bio"),
		ProfileImageURL: optField(values, "profile_image_url"),
	}
	_, err = r.users.Update(ctx, id, in)
	return err
}

func (r userResource) remove(ctx context.Context, id int64) error {
	return r.users.Delete(ctx, id)
}

// dateField parses a date input; an empty input clears the date
func dateField(values url.Values, name string) (models.Optional[models.Date], error) {
	if _, ok := values[name]; !ok {
		return models.Optional[models.Date]{}, nil
	}
	v := values.Get(name)
	if v == "" {
		return models.Null[models.Date](), nil
	}
	t, err := models.ParseDate(v)
	if err != nil {
		return models.Optional[models.Date]{}, formError("Geçersiz doğum tarihi")
	}
	return models.Some(models.Date{Time: t}), nil
}
