package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mvcarvalho/flixcatalog-backend/api/responses"
	"github.com/mvcarvalho/flixcatalog-backend/internal/video"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/config"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
)

// Multipart form fields carrying the media slot uploads.
var slotFileFields = map[enums.VideoMediaKind]string{
	enums.VideoMediaKindThumbnail:     "thumb_file",
	enums.VideoMediaKindThumbnailHalf: "thumb_half_file",
	enums.VideoMediaKindBanner:        "banner_file",
	enums.VideoMediaKindTrailer:       "trailer_file",
	enums.VideoMediaKindVideo:         "video_file",
}

const multipartMemoryLimit = 32 << 20

func VideoCreate(svc video.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer cleanupMultipart(r)

		input, err := buildCreateInput(r, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.CreateVideo(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func VideoUpdate(svc video.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathID(r, "videoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer cleanupMultipart(r)

		input, err := buildUpdateInput(r, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateVideo(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func VideoGet(svc video.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathID(r, "videoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.GetVideo(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func VideoList(svc video.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListVideos(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func VideoDelete(svc video.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathID(r, "videoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteVideo(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func buildCreateInput(r *http.Request, media config.MediaConfig) (*video.CreateVideoInput, error) {
	yearLaunched, err := parseFormInt(r, "year_launched")
	if err != nil {
		return nil, err
	}
	duration, err := parseFormInt(r, "duration")
	if err != nil {
		return nil, err
	}
	opened := strings.EqualFold(r.FormValue("opened"), "true")
	rating, err := enums.ParseRating(r.FormValue("rating"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rating")
	}

	categoryIDs, err := parseIDList(r, "categories_id")
	if err != nil {
		return nil, err
	}
	genreIDs, err := parseIDList(r, "genres_id")
	if err != nil {
		return nil, err
	}
	castMemberIDs, err := parseIDList(r, "cast_members_id")
	if err != nil {
		return nil, err
	}

	input := &video.CreateVideoInput{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		YearLaunched:  yearLaunched,
		Duration:      duration,
		Opened:        opened,
		Rating:        rating,
		CategoryIDs:   categoryIDs,
		GenreIDs:      genreIDs,
		CastMemberIDs: castMemberIDs,
	}

	for kind, field := range slotFileFields {
		payload, err := formFilePayload(r, field, kind, media)
		if err != nil {
			return nil, err
		}
		if payload == nil {
			continue
		}
		setCreateSlot(input, kind, payload)
	}
	return input, nil
}

func buildUpdateInput(r *http.Request, media config.MediaConfig) (*video.UpdateVideoInput, error) {
	input := &video.UpdateVideoInput{}

	if value, ok := formValue(r, "title"); ok {
		input.Title = &value
	}
	if value, ok := formValue(r, "description"); ok {
		input.Description = &value
	}
	if value, ok := formValue(r, "year_launched"); ok {
		parsed, err := parseIntValue("year_launched", value)
		if err != nil {
			return nil, err
		}
		input.YearLaunched = &parsed
	}
	if value, ok := formValue(r, "duration"); ok {
		parsed, err := parseIntValue("duration", value)
		if err != nil {
			return nil, err
		}
		input.Duration = &parsed
	}
	if value, ok := formValue(r, "opened"); ok {
		opened := strings.EqualFold(value, "true")
		input.Opened = &opened
	}
	if value, ok := formValue(r, "rating"); ok {
		rating, err := enums.ParseRating(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rating")
		}
		input.Rating = &rating
	}

	if formHasKey(r, "categories_id") {
		ids, err := parseIDList(r, "categories_id")
		if err != nil {
			return nil, err
		}
		input.CategoryIDs = &ids
	}
	if formHasKey(r, "genres_id") {
		ids, err := parseIDList(r, "genres_id")
		if err != nil {
			return nil, err
		}
		input.GenreIDs = &ids
	}
	if formHasKey(r, "cast_members_id") {
		ids, err := parseIDList(r, "cast_members_id")
		if err != nil {
			return nil, err
		}
		input.CastMemberIDs = &ids
	}

	cleared, err := clearedSlots(r)
	if err != nil {
		return nil, err
	}
	for _, kind := range cleared {
		setUpdateSlot(input, kind, &video.MediaUpdate{})
	}
	for kind, field := range slotFileFields {
		payload, err := formFilePayload(r, field, kind, media)
		if err != nil {
			return nil, err
		}
		if payload == nil {
			continue
		}
		setUpdateSlot(input, kind, &video.MediaUpdate{File: payload})
	}
	return input, nil
}

func setCreateSlot(input *video.CreateVideoInput, kind enums.VideoMediaKind, payload *video.FilePayload) {
	switch kind {
	case enums.VideoMediaKindThumbnail:
		input.Media.Thumbnail = payload
	case enums.VideoMediaKindThumbnailHalf:
		input.Media.ThumbnailHalf = payload
	case enums.VideoMediaKindBanner:
		input.Media.Banner = payload
	case enums.VideoMediaKindTrailer:
		input.Media.Trailer = payload
	case enums.VideoMediaKindVideo:
		input.Media.VideoFile = payload
	}
}

func setUpdateSlot(input *video.UpdateVideoInput, kind enums.VideoMediaKind, update *video.MediaUpdate) {
	switch kind {
	case enums.VideoMediaKindThumbnail:
		input.Media.Thumbnail = update
	case enums.VideoMediaKindThumbnailHalf:
		input.Media.ThumbnailHalf = update
	case enums.VideoMediaKindBanner:
		input.Media.Banner = update
	case enums.VideoMediaKindTrailer:
		input.Media.Trailer = update
	case enums.VideoMediaKindVideo:
		input.Media.VideoFile = update
	}
}

// clearedSlots reads the repeated clear_media field naming slots to empty.
func clearedSlots(r *http.Request) ([]enums.VideoMediaKind, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var kinds []enums.VideoMediaKind
	for _, value := range r.MultipartForm.Value["clear_media"] {
		kind, err := enums.ParseVideoMediaKind(strings.TrimSpace(value))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid clear_media value")
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func formValue(r *http.Request, key string) (string, bool) {
	if !formHasKey(r, key) {
		return "", false
	}
	return r.FormValue(key), true
}

func formHasKey(r *http.Request, key string) bool {
	if r.MultipartForm == nil {
		return false
	}
	_, ok := r.MultipartForm.Value[key]
	return ok
}

func parseFormInt(r *http.Request, key string) (int, error) {
	return parseIntValue(key, r.FormValue(key))
}

func parseIntValue(key, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be numeric", key)
	}
	return parsed, nil
}

// parseIDList accepts repeated form values and comma-separated lists.
func parseIDList(r *http.Request, key string) ([]uuid.UUID, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var ids []uuid.UUID
	for _, raw := range r.MultipartForm.Value[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "%s contains an invalid id %q", key, part)
			}
			ids = append(ids, id)
		}
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

func formFilePayload(r *http.Request, field string, kind enums.VideoMediaKind, media config.MediaConfig) (*video.FilePayload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded file")
	}
	if err := checkUploadSize(header, kind, media); err != nil {
		_ = file.Close()
		return nil, err
	}
	return &video.FilePayload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, nil
}

func checkUploadSize(header *multipart.FileHeader, kind enums.VideoMediaKind, media config.MediaConfig) error {
	limitMB := media.MaxImageUploadMB
	if kind.MediaType() == enums.MediaTypeVideo {
		limitMB = media.MaxVideoUploadMB
	}
	if limitMB > 0 && header.Size > int64(limitMB)<<20 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%s exceeds the %d MB upload limit", kind, limitMB))
	}
	return nil
}

func cleanupMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}
