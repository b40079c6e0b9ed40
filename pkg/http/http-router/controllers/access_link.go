package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"
	helper "github.com/lintang-b-s/transit-access-link/pkg/http/http-router/router-helper"
	"github.com/lintang-b-s/transit-access-link/pkg/http/usecases"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const maxRequestBody = 64 << 20

type accessLinkAPI struct {
	accessLinkService AccessLinkService
	log               *zap.Logger
	validate          *validator.Validate
	trans             ut.Translator
}

func New(accessLinkService AccessLinkService, log *zap.Logger) *accessLinkAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &accessLinkAPI{
		accessLinkService: accessLinkService,
		log:               log,
		validate:          validate,
		trans:             trans,
	}
}

func (api *accessLinkAPI) Routes(group *helper.RouteGroup) {
	group.POST("/access-links", api.generate)
	group.GET("/access-links", api.list)
	group.GET("/access-links/:id", api.get)
}

// networkNodeRequest model info
//
//	@Description	one row of the network node table. numbers or numeric strings are accepted.
type networkNodeRequest struct {
	NodeID any `json:"node_id" validate:"required"`
	XCoord any `json:"x_coord" validate:"required"`
	YCoord any `json:"y_coord" validate:"required"`
}

// serviceNodeRequest model info
//
//	@Description	one row of the transit node table.
type serviceNodeRequest struct {
	NodeID            any    `json:"node_id" validate:"required"`
	XCoord            any    `json:"x_coord" validate:"required"`
	YCoord            any    `json:"y_coord" validate:"required"`
	NodeType          string `json:"node_type"`
	DirectedServiceID any    `json:"directed_service_id"`
}

// generateRequest model info
//
//	@Description	request body for access link generation.
type generateRequest struct {
	Units        string               `json:"units"`                            // customary (default) or metric.
	Radius       *float64             `json:"radius" validate:"omitempty,gt=0"` // search radius in coordinate units, omitted keeps the server default.
	NodeType     string               `json:"node_type"`                        // eligible service node type, empty keeps the server default.
	Workers      int                  `json:"workers" validate:"min=0,max=64"`  // matcher goroutines.
	Persist      bool                 `json:"persist"`                          // store the links so they can be fetched by id.
	NetworkNodes []networkNodeRequest `json:"network_nodes" validate:"dive"`
	ServiceNodes []serviceNodeRequest `json:"service_nodes" validate:"dive"`
}

// generateResponse model info
//
//	@Description	generated access links, in service node order.
type generateResponse struct {
	Data []datastructure.AccessLink `json:"data"`
}

// field renders a decoded json value the way it would appear in a csv cell.
func field(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case json.Number:
		return val.String()
	case string:
		return val
	default:
		return cast.ToString(val)
	}
}

func (req generateRequest) params() usecases.GenerateParams {
	params := usecases.GenerateParams{
		Options: usecases.Options{
			Units:    req.Units,
			Radius:   req.Radius,
			NodeType: req.NodeType,
			Workers:  req.Workers,
			Persist:  req.Persist,
		},
		NetworkNodes: make([]datastructure.NetworkNodeRecord, 0, len(req.NetworkNodes)),
		ServiceNodes: make([]datastructure.ServiceNodeRecord, 0, len(req.ServiceNodes)),
	}
	for _, n := range req.NetworkNodes {
		params.NetworkNodes = append(params.NetworkNodes, datastructure.NetworkNodeRecord{
			NodeID: field(n.NodeID),
			XCoord: field(n.XCoord),
			YCoord: field(n.YCoord),
		})
	}
	for _, n := range req.ServiceNodes {
		params.ServiceNodes = append(params.ServiceNodes, datastructure.ServiceNodeRecord{
			NodeID:            field(n.NodeID),
			XCoord:            field(n.XCoord),
			YCoord:            field(n.YCoord),
			DirectedServiceID: field(n.DirectedServiceID),
			NodeType:          n.NodeType,
		})
	}
	return params
}

// generate godoc
// @Summary		generate access links from service nodes to their nearest network node.
// @Tags			access-links
// @ID generate-access-links
// @Param			body	body	generateRequest	true
// @Accept			application/json
// @Produce		application/json
// @Router			/api/access-links [post]
// @Success		200	{object}	generateResponse
// @Failure		400	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *accessLinkAPI) generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.UseNumber()
	if err := dec.Decode(&request); err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", strings.Join(vvString, ", ")))
		return
	}

	links, err := api.accessLinkService.Generate(r.Context(), request.params())
	if err != nil {
		api.ErrorResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": links}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// get godoc
// @Summary		get a stored access link by its id (the service node id).
// @Tags			access-links
// @ID get-access-link
// @Produce		application/json
// @Router			/api/access-links/{id} [get]
// @Failure		404	{object}	errorResponse
func (api *accessLinkAPI) get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	link, err := api.accessLinkService.GetLink(ps.ByName("id"))
	if err != nil {
		api.ErrorResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": link}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *accessLinkAPI) list(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	links, err := api.accessLinkService.ListLinks()
	if err != nil {
		api.ErrorResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": links}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(trans)))
	}
	return errs
}
