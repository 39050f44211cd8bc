package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"skillpath-backend/internal/models"
)

var (
	allowedAreas   = []string{"Desenvolvimento Web", "IA/ML", "Dados", "Design", "DevOps"}
	allowedLevels  = []string{"iniciante", "intermediário", "avançado"}
	allowedFormats = []string{"vídeo", "artigo", "curso", "documentação"}
)

// ProfileValidator checks learner profiles and reports failures with the
// pt-BR messages shown by the web form.
type ProfileValidator struct {
	v *validator.Validate
}

func NewProfileValidator() *ProfileValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// oneof splits on spaces, which breaks "Desenvolvimento Web".
	for tag, allowed := range map[string][]string{
		"area":   allowedAreas,
		"level":  allowedLevels,
		"format": allowedFormats,
	} {
		allowed := allowed
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return contains(allowed, fl.Field().String())
		})
	}

	return &ProfileValidator{v: v}
}

func (pv *ProfileValidator) Validate(p *models.LearnerProfile) error {
	err := pv.v.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	details := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, models.FieldError{
			Field:   fieldPath(fe),
			Message: profileMessage(fe),
		})
	}
	return &ValidationError{Details: details}
}

// fieldPath drops the struct name: "LearnerProfile.preferredFormat[1]"
// becomes "preferredFormat.1".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func profileMessage(fe validator.FieldError) string {
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}

	switch field {
	case "objective":
		if fe.Tag() == "max" {
			return "Objetivo deve ter no máximo 120 caracteres"
		}
		return "Objetivo deve ter pelo menos 5 caracteres"
	case "area":
		return "Selecione uma área válida: " + strings.Join(allowedAreas, ", ")
	case "level":
		return "Selecione um nível válido: " + strings.Join(allowedLevels, ", ")
	case "weeklyTime":
		if fe.Tag() == "max" {
			return "Tempo semanal não pode exceder 20 horas"
		}
		return "Tempo semanal deve ser pelo menos 1 hora"
	case "deadlineWeeks":
		if fe.Tag() == "max" {
			return "Prazo máximo é de 26 semanas"
		}
		return "Prazo mínimo é de 2 semanas"
	case "preferredFormat":
		return "Formato inválido: use " + strings.Join(allowedFormats, ", ")
	default:
		return "Valor inválido"
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
