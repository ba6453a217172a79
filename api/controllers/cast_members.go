package controllers

import (
	"net/http"

	"github.com/mvcarvalho/flixcatalog-backend/api/responses"
	"github.com/mvcarvalho/flixcatalog-backend/api/validators"
	"github.com/mvcarvalho/flixcatalog-backend/internal/castmember"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"

	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

type createCastMemberBody struct {
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"required"`
}

type updateCastMemberBody struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
	Type *string `json:"type"`
}

func CastMemberCreate(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCastMemberBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		memberType, err := enums.ParseCastMemberType(body.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type"))
			return
		}
		dto, err := svc.Create(r.Context(), castmember.CreateCastMemberInput{
			Name: body.Name,
			Type: memberType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func CastMemberGet(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathID(r, "castMemberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func CastMemberList(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func CastMemberUpdate(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathID(r, "castMemberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateCastMemberBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := castmember.UpdateCastMemberInput{Name: body.Name}
		if body.Type != nil {
			memberType, err := enums.ParseCastMemberType(*body.Type)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type"))
				return
			}
			input.Type = &memberType
		}
		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func CastMemberDelete(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathID(r, "castMemberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
