package services

import (
	"context"
	"errors"
	"testing"

	"pereval-backend/internal/models"
)

// fakeStore records calls and returns canned results.
type fakeStore struct {
	created   *models.PassInput
	createID  int64
	createErr error
	updated   *models.PassInput
	updateID  int64
	updateErr error
}

func (f *fakeStore) Create(ctx context.Context, input *models.PassInput) (int64, error) {
	f.created = input
	return f.createID, f.createErr
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*models.Pass, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Update(ctx context.Context, id int64, input *models.PassInput) error {
	f.updateID = id
	f.updated = input
	return f.updateErr
}

func (f *fakeStore) ListByUserEmail(ctx context.Context, email string) ([]*models.Pass, error) {
	return []*models.Pass{}, nil
}

func validInput() *models.PassInput {
	return &models.PassInput{
		BeautyTitle: "pereval",
		Title:       "Pkhiya",
		User: &models.User{
			Email: "climber@example.com",
			Phone: "+7 900 000 00 00",
			Fam:   "Ivanov",
			Name:  "Petr",
		},
		Coords: &models.Coords{Latitude: 45.3842, Longitude: 7.1525, Height: 1200},
		Level:  &models.Level{Winter: "1A", Summer: "1A"},
		Images: []models.Image{{Title: "Saddle", URL: "https://example.com/1.jpg"}},
	}
}

func TestSubmitPass(t *testing.T) {
	store := &fakeStore{createID: 42}
	svc := NewPassService(store)

	id, err := svc.SubmitPass(context.Background(), validInput())
	if err != nil {
		t.Fatalf("SubmitPass failed: %v", err)
	}
	if id != 42 {
		t.Errorf("expected id 42, got %d", id)
	}
	if store.created == nil {
		t.Fatal("expected store.Create to be called")
	}
}

func TestSubmitPassRequiresUser(t *testing.T) {
	svc := NewPassService(&fakeStore{})

	input := validInput()
	input.User = nil

	_, err := svc.SubmitPass(context.Background(), input)
	assertValidationError(t, err)
}

func TestSubmitPassValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PassInput)
	}{
		{"missing title", func(in *models.PassInput) { in.Title = "" }},
		{"missing coords", func(in *models.PassInput) { in.Coords = nil }},
		{"latitude out of range", func(in *models.PassInput) { in.Coords.Latitude = 91 }},
		{"longitude out of range", func(in *models.PassInput) { in.Coords.Longitude = -181 }},
		{"height too large", func(in *models.PassInput) { in.Coords.Height = 9001 }},
		{"negative height", func(in *models.PassInput) { in.Coords.Height = -1 }},
		{"unknown grade", func(in *models.PassInput) { in.Level.Winter = "4A" }},
		{"bad email", func(in *models.PassInput) { in.User.Email = "not-an-email" }},
		{"short phone", func(in *models.PassInput) { in.User.Phone = "123" }},
		{"image without url", func(in *models.PassInput) { in.Images[0].URL = "" }},
		{"too many images", func(in *models.PassInput) {
			in.Images = make([]models.Image, 11)
			for i := range in.Images {
				in.Images[i] = models.Image{Title: "img", URL: "https://example.com/i.jpg"}
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := NewPassService(store)

			input := validInput()
			tt.mutate(input)

			_, err := svc.SubmitPass(context.Background(), input)
			assertValidationError(t, err)
			if store.created != nil {
				t.Error("store.Create must not be called on invalid input")
			}
		})
	}
}

func TestSubmitPassStoreFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("insert failed")}
	svc := NewPassService(store)

	_, err := svc.SubmitPass(context.Background(), validInput())
	if err == nil {
		t.Fatal("expected error")
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		t.Errorf("store failure must not be reported as validation error: %v", err)
	}
}

func TestUpdatePass(t *testing.T) {
	store := &fakeStore{}
	svc := NewPassService(store)

	input := validInput()
	input.User = nil // update without a user block is allowed

	if err := svc.UpdatePass(context.Background(), 7, input); err != nil {
		t.Fatalf("UpdatePass failed: %v", err)
	}
	if store.updateID != 7 {
		t.Errorf("expected store.Update for id 7, got %d", store.updateID)
	}
}

func TestUpdatePassRequiresCoords(t *testing.T) {
	// An update without a coords block must be rejected instead of
	// silently zeroing the stored coordinates.
	store := &fakeStore{}
	svc := NewPassService(store)

	input := validInput()
	input.Coords = nil

	err := svc.UpdatePass(context.Background(), 7, input)
	assertValidationError(t, err)
	if store.updated != nil {
		t.Error("store.Update must not be called without coords")
	}
}

func TestUpdatePassValidation(t *testing.T) {
	store := &fakeStore{}
	svc := NewPassService(store)

	input := validInput()
	input.Coords.Height = 20000

	err := svc.UpdatePass(context.Background(), 7, input)
	assertValidationError(t, err)
	if store.updated != nil {
		t.Error("store.Update must not be called on invalid input")
	}
}

func TestUpdatePassStoreErrorPassthrough(t *testing.T) {
	sentinel := errors.New("status gate rejected")
	store := &fakeStore{updateErr: sentinel}
	svc := NewPassService(store)

	err := svc.UpdatePass(context.Background(), 7, validInput())
	if !errors.Is(err, sentinel) {
		t.Errorf("expected store error to pass through, got %v", err)
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
}
