package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/cardvault/internal/archive"
	"github.com/inovacc/cardvault/internal/imaging"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/inovacc/cardvault/internal/store"
	"golang.org/x/text/language"
)

// Repository is the facade over the record store used by every view.
type Repository struct {
	store      store.Store
	codec      *archive.Codec
	normalizer *imaging.Normalizer
	locale     language.Tag
	exportDir  string
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// New creates a Repository over s configured from cfg.
// An unparseable cfg.Locale falls back to the root locale.
func New(s store.Store, cfg model.Config) *Repository {
	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		locale = language.Und
	}

	return &Repository{
		store:      s,
		codec:      archive.NewCodec(s),
		normalizer: imaging.New(cfg.MaxWidth, cfg.MaxHeight, cfg.Quality),
		locale:     locale,
		exportDir:  cfg.ExportDir,
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithLogger sets the logger for the repository and its codec
func (r *Repository) WithLogger(logger *slog.Logger) *Repository {
	r.logger = logger
	r.codec.WithLogger(logger)

	return r
}

// WithClock overrides the clock used for createdAt and export file names
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	r.codec.WithClock(now)

	return r
}

// WithIDGenerator overrides the generator of new card IDs
func (r *Repository) WithIDGenerator(newID func() string) *Repository {
	r.newID = newID
	return r
}

// Normalizer returns the image normalizer used for photos.
func (r *Repository) Normalizer() *imaging.Normalizer {
	return r.normalizer
}

// Create validates f, assigns a fresh ID and creation time and stores the card.
func (r *Repository) Create(ctx context.Context, f model.Fields) (model.CharacterCard, error) {
	if err := validateFields(&f); err != nil {
		return model.CharacterCard{}, err
	}

	if err := r.resolvePhoto(&f); err != nil {
		return model.CharacterCard{}, err
	}

	card := model.CharacterCard{
		ID:        r.newID(),
		CreatedAt: r.now().UnixMilli(),
	}
	card.Apply(f)

	if err := r.store.Put(ctx, card); err != nil {
		return model.CharacterCard{}, fmt.Errorf("create card: %w", err)
	}

	r.logger.Info("card created", "id", card.ID, "name", card.Name)

	return card, nil
}

// Update overwrites every mutable field of the card with id.
// ID and creation time are preserved.
func (r *Repository) Update(ctx context.Context, id string, f model.Fields) (model.CharacterCard, error) {
	if err := validateFields(&f); err != nil {
		return model.CharacterCard{}, err
	}

	card, err := r.Get(ctx, id)
	if err != nil {
		return model.CharacterCard{}, err
	}

	if err := r.resolvePhoto(&f); err != nil {
		return model.CharacterCard{}, err
	}

	card.Apply(f)

	if err := r.store.Put(ctx, card); err != nil {
		return model.CharacterCard{}, fmt.Errorf("update card: %w", err)
	}

	r.logger.Info("card updated", "id", card.ID, "name", card.Name)

	return card, nil
}

// Remove deletes the card with id. Removing an unknown id is not an error.
func (r *Repository) Remove(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove card: %w", err)
	}

	r.logger.Info("card removed", "id", id)

	return nil
}

// Get returns the card with id or a *NotFoundError.
func (r *Repository) Get(ctx context.Context, id string) (model.CharacterCard, error) {
	card, ok, err := r.store.Get(ctx, id)
	if err != nil {
		return model.CharacterCard{}, fmt.Errorf("get card: %w", err)
	}

	if !ok {
		return model.CharacterCard{}, &NotFoundError{ID: id}
	}

	return card, nil
}

// Resolve finds a card by full ID or by a unique ID prefix such as the
// short ID shown in name-only listings.
func (r *Repository) Resolve(ctx context.Context, ref string) (model.CharacterCard, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.CharacterCard{}, &ValidationError{Field: "id", Reason: "must not be empty"}
	}

	card, ok, err := r.store.Get(ctx, ref)
	if err != nil {
		return model.CharacterCard{}, fmt.Errorf("get card: %w", err)
	}

	if ok {
		return card, nil
	}

	cards, err := r.store.List(ctx)
	if err != nil {
		return model.CharacterCard{}, fmt.Errorf("list cards: %w", err)
	}

	var matches []model.CharacterCard

	for _, c := range cards {
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return model.CharacterCard{}, &NotFoundError{ID: ref}
	case 1:
		return matches[0], nil
	}

	return model.CharacterCard{}, &ValidationError{
		Field:  "id",
		Reason: fmt.Sprintf("%q matches %d cards, use more characters", ref, len(matches)),
	}
}

// List returns every card, newest first.
func (r *Repository) List(ctx context.Context) ([]model.CharacterCard, error) {
	return r.Search(ctx, Query{Sort: SortNewest})
}

// Search filters and orders the stored cards. The store is not modified.
func (r *Repository) Search(ctx context.Context, q Query) ([]model.CharacterCard, error) {
	cards, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return SearchCards(cards, q, r.locale), nil
}

// DistinctTags returns every tag across all cards, de-duplicated and sorted.
func (r *Repository) DistinctTags(ctx context.Context) ([]string, error) {
	cards, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return DistinctTagsOf(cards, r.locale), nil
}

// AttachPhoto normalizes raw and stores it as the photo of the card with id.
// A decode failure leaves the stored card untouched.
func (r *Repository) AttachPhoto(ctx context.Context, id string, raw []byte) (model.CharacterCard, error) {
	card, err := r.Get(ctx, id)
	if err != nil {
		return model.CharacterCard{}, err
	}

	photo, err := r.normalizer.Normalize(raw)
	if err != nil {
		return model.CharacterCard{}, err
	}

	card.Photo = photo

	if err := r.store.Put(ctx, card); err != nil {
		return model.CharacterCard{}, fmt.Errorf("attach photo: %w", err)
	}

	r.logger.Info("photo attached", "id", card.ID, "bytes", len(photo))

	return card, nil
}

// AttachPhotoFile reads the image at path and attaches it to the card with id.
func (r *Repository) AttachPhotoFile(ctx context.Context, id, path string) (model.CharacterCard, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.CharacterCard{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	return r.AttachPhoto(ctx, id, raw)
}

// Export returns the archive text of every stored card.
func (r *Repository) Export(ctx context.Context) (string, error) {
	return r.codec.Export(ctx)
}

// Import merges (or replaces with) the cards in archive text.
func (r *Repository) Import(ctx context.Context, text string, mode archive.Mode) (archive.Result, error) {
	return r.codec.Import(ctx, text, mode)
}

// ExportToDir writes a timestamped export file into dir and returns its path.
// An empty dir uses the configured export directory.
func (r *Repository) ExportToDir(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		dir = r.exportDir
	}

	return r.codec.WriteExport(ctx, dir)
}

// ImportFile imports the archive file at path.
func (r *Repository) ImportFile(ctx context.Context, path string, mode archive.Mode) (archive.Result, error) {
	text, err := archive.ReadImportFile(path)
	if err != nil {
		return archive.Result{}, err
	}

	return r.codec.Import(ctx, text, mode)
}

func validateFields(f *model.Fields) error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	return nil
}

func (r *Repository) resolvePhoto(f *model.Fields) error {
	if f.PhotoPath == "" {
		f.Photo = strings.TrimSpace(f.Photo)
		return nil
	}

	photo, err := r.normalizer.NormalizeFile(f.PhotoPath)
	if err != nil {
		return err
	}

	f.Photo = photo
	f.PhotoPath = ""

	return nil
}
