package rest

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/buzkaaclicker/profiles"
	"github.com/gofiber/fiber/v2"
)

type ProfileResponse struct {
	Id        int64     `json:"id"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
}

// ProfileSerializer maps profiles to their json representation and back.
// Stored images are paths relative to MediaUrl unless already absolute urls.
type ProfileSerializer struct {
	MediaUrl string
}

func (s ProfileSerializer) Serialize(p profiles.Profile) ProfileResponse {
	return ProfileResponse{
		Id:        int64(p.Id),
		Owner:     p.Owner.Username,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Name:      p.Name,
		Content:   p.Content,
		Image:     s.imageUrl(p.Image),
	}
}

func (s ProfileSerializer) SerializeAll(ps []profiles.Profile) []ProfileResponse {
	mapped := make([]ProfileResponse, len(ps))
	for i, p := range ps {
		mapped[i] = s.Serialize(p)
	}
	return mapped
}

func (s ProfileSerializer) imageUrl(image string) string {
	if isAbsoluteUrl(image) {
		return image
	}
	return s.MediaUrl + image
}

func (s ProfileSerializer) imagePath(image string) string {
	if s.MediaUrl != "" && strings.HasPrefix(image, s.MediaUrl) {
		return strings.TrimPrefix(image, s.MediaUrl)
	}
	return image
}

func isAbsoluteUrl(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

type profileInput struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Content *string `json:"content"`
	Image   *string `json:"image" validate:"omitempty,max=100"`
}

// Deserialize validates a request body against the writable profile fields.
// Read-only and unknown keys are ignored, absent writable keys keep the stored value.
// A rejected body yields profiles.ValidationErrors.
func (s ProfileSerializer) Deserialize(body []byte) (profiles.ProfileUpdate, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return profiles.ProfileUpdate{}, fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	errs := profiles.ValidationErrors{}
	input := profileInput{
		Name:    trimmed(stringField(errs, raw, "name")),
		Content: trimmed(stringField(errs, raw, "content")),
		Image:   stringField(errs, raw, "image"),
	}
	if input.Image != nil {
		path := s.imagePath(*input.Image)
		input.Image = &path
		if strings.TrimSpace(path) == "" {
			errs.Add("image", "This field may not be blank.")
		}
	}
	if err := validateStruct(errs, &input); err != nil {
		return profiles.ProfileUpdate{}, err
	}
	if err := errs.OrNil(); err != nil {
		return profiles.ProfileUpdate{}, err
	}

	return profiles.ProfileUpdate{
		Name:    input.Name,
		Content: input.Content,
		Image:   input.Image,
	}, nil
}

// stringField decodes an optional string field, recording type errors in errs.
func stringField(errs profiles.ValidationErrors, raw map[string]json.RawMessage, field string) *string {
	value, ok := raw[field]
	if !ok {
		return nil
	}
	if string(value) == "null" {
		errs.Add(field, "This field may not be null.")
		return nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		errs.Add(field, "Not a valid string.")
		return nil
	}
	// postgres text columns cannot hold NUL
	if strings.ContainsRune(s, '\x00') {
		errs.Add(field, "Null characters are not allowed.")
		return nil
	}
	return &s
}

// trimmed strips surrounding whitespace before length rules apply.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
