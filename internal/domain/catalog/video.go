package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/events"
)

// Image is a stored picture referenced by its storage path
type Image struct {
	Path string `json:"path"`
}

// AssetSlot names one of the binary assets a video can hold
type AssetSlot string

const (
	SlotBanner    AssetSlot = "banner"
	SlotThumb     AssetSlot = "thumb"
	SlotThumbHalf AssetSlot = "thumbhalf"
	SlotMedia     AssetSlot = "media"
	SlotTrailer   AssetSlot = "trailer"
)

// Video is the catalog aggregate root
type Video struct {
	BaseAggregate

	Title        string `json:"title"`
	Description  string `json:"description"`
	YearLaunched int    `json:"year_launched"`
	Duration     int    `json:"duration"`
	Opened       bool   `json:"opened"`
	Published    bool   `json:"published"`
	Rating       Rating `json:"rating"`

	Banner    *Image `json:"banner,omitempty"`
	Thumb     *Image `json:"thumb,omitempty"`
	ThumbHalf *Image `json:"thumb_half,omitempty"`
	Media     *Media `json:"media,omitempty"`
	Trailer   *Media `json:"trailer,omitempty"`

	categories  idSet
	genres      idSet
	castMembers idSet

	events []events.Event
}

// NewVideo creates a video. It does not validate; call Finalize for that.
func NewVideo(title, description string, yearLaunched, duration int, opened, published bool, rating Rating) *Video {
	return &Video{
		BaseAggregate: NewBaseAggregate(),
		Title:         title,
		Description:   description,
		YearLaunched:  yearLaunched,
		Duration:      duration,
		Opened:        opened,
		Published:     published,
		Rating:        rating,
	}
}

// Update replaces the descriptive fields
func (v *Video) Update(title, description string, yearLaunched, duration int, opened, published bool, rating Rating) {
	v.Title = title
	v.Description = description
	v.YearLaunched = yearLaunched
	v.Duration = duration
	v.Opened = opened
	v.Published = published
	v.Rating = rating
	v.touch()
}

func (v *Video) AddCategory(id uuid.UUID)   { v.categories.add(id) }
func (v *Video) AddGenre(id uuid.UUID)      { v.genres.add(id) }
func (v *Video) AddCastMember(id uuid.UUID) { v.castMembers.add(id) }

func (v *Video) RemoveAllCategories()  { v.categories.clear() }
func (v *Video) RemoveAllGenres()      { v.genres.clear() }
func (v *Video) RemoveAllCastMembers() { v.castMembers.clear() }

// Categories returns the category ids in a stable order
func (v *Video) Categories() []uuid.UUID { return v.categories.sorted() }

// Genres returns the genre ids in a stable order
func (v *Video) Genres() []uuid.UUID { return v.genres.sorted() }

// CastMembers returns the cast member ids in a stable order
func (v *Video) CastMembers() []uuid.UUID { return v.castMembers.sorted() }

// HasCategory reports whether id is attached
func (v *Video) HasCategory(id uuid.UUID) bool { return v.categories.has(id) }

func (v *Video) UpdateBanner(path string) {
	v.Banner = &Image{Path: path}
	v.touch()
}

func (v *Video) UpdateThumb(path string) {
	v.Thumb = &Image{Path: path}
	v.touch()
}

func (v *Video) UpdateThumbHalf(path string) {
	v.ThumbHalf = &Image{Path: path}
	v.touch()
}

// UpdateMedia attaches a new pending primary media file, discarding the
// previous one, and records a VideoUploaded event.
func (v *Video) UpdateMedia(path string) {
	v.Media = NewMedia(path)
	v.touch()
	v.events = append(v.events, NewVideoUploaded(v.ID, path))
}

// UpdateTrailer attaches a new pending trailer, discarding the previous one.
func (v *Video) UpdateTrailer(path string) {
	v.Trailer = NewMedia(path)
	v.touch()
}

// ReplaceAsset stores path in slot and returns the stored files it made
// obsolete: the previous file and, for media slots, its encoded output.
// path itself is never returned.
func (v *Video) ReplaceAsset(slot AssetSlot, path string) ([]string, error) {
	previous := []string{v.AssetPath(slot)}
	switch slot {
	case SlotBanner:
		v.UpdateBanner(path)
	case SlotThumb:
		v.UpdateThumb(path)
	case SlotThumbHalf:
		v.UpdateThumbHalf(path)
	case SlotMedia:
		if v.Media != nil {
			previous = append(previous, v.Media.EncodedPath)
		}
		v.UpdateMedia(path)
	case SlotTrailer:
		if v.Trailer != nil {
			previous = append(previous, v.Trailer.EncodedPath)
		}
		v.UpdateTrailer(path)
	default:
		return nil, fmt.Errorf("unknown asset slot %q", slot)
	}

	var obsolete []string
	for _, p := range previous {
		if p != "" && p != path {
			obsolete = append(obsolete, p)
		}
	}
	return obsolete, nil
}

// AssetPath returns the stored path for slot, or "" when empty.
func (v *Video) AssetPath(slot AssetSlot) string {
	switch slot {
	case SlotBanner:
		if v.Banner != nil {
			return v.Banner.Path
		}
	case SlotThumb:
		if v.Thumb != nil {
			return v.Thumb.Path
		}
	case SlotThumbHalf:
		if v.ThumbHalf != nil {
			return v.ThumbHalf.Path
		}
	case SlotMedia:
		if v.Media != nil {
			return v.Media.FilePath
		}
	case SlotTrailer:
		if v.Trailer != nil {
			return v.Trailer.FilePath
		}
	}
	return ""
}

// AssetPaths returns every non-empty stored path, encoded outputs included.
func (v *Video) AssetPaths() []string {
	var paths []string
	for _, slot := range []AssetSlot{SlotBanner, SlotThumb, SlotThumbHalf, SlotMedia, SlotTrailer} {
		if p := v.AssetPath(slot); p != "" {
			paths = append(paths, p)
		}
	}
	for _, m := range []*Media{v.Media, v.Trailer} {
		if m != nil && m.EncodedPath != "" {
			paths = append(paths, m.EncodedPath)
		}
	}
	return paths
}

// AssetName is the storage name for an upload into slot: "{id}-{slot}.{ext}".
func (v *Video) AssetName(slot AssetSlot, extension string) string {
	ext := strings.TrimPrefix(extension, ".")
	if ext == "" {
		return fmt.Sprintf("%s-%s", v.ID, slot)
	}
	return fmt.Sprintf("%s-%s.%s", v.ID, slot, ext)
}

// MarkMediaSentToEncode moves the primary media to Processing
func (v *Video) MarkMediaSentToEncode() error {
	if v.Media == nil {
		return ErrVideoHasNoMedia
	}
	if err := v.Media.UpdateSentToEncode(); err != nil {
		return err
	}
	v.touch()
	return nil
}

// MarkMediaEncoded moves the primary media to Completed
func (v *Video) MarkMediaEncoded(encodedPath string) error {
	if v.Media == nil {
		return ErrVideoHasNoMedia
	}
	if err := v.Media.UpdateAsEncoded(encodedPath); err != nil {
		return err
	}
	v.touch()
	return nil
}

// MarkMediaEncodingError moves the primary media to Error
func (v *Video) MarkMediaEncodingError() error {
	if v.Media == nil {
		return ErrVideoHasNoMedia
	}
	if err := v.Media.UpdateAsEncodingError(); err != nil {
		return err
	}
	v.touch()
	return nil
}

// PullEvents returns the recorded events and clears them
func (v *Video) PullEvents() []events.Event {
	pending := v.events
	v.events = nil
	return pending
}
