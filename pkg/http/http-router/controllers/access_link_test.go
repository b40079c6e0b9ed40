package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/transit-access-link/pkg"
	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"
	helper "github.com/lintang-b-s/transit-access-link/pkg/http/http-router/router-helper"
	"github.com/lintang-b-s/transit-access-link/pkg/http/usecases"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeService struct {
	params usecases.GenerateParams
	links  []datastructure.AccessLink
	err    error
}

func (f *fakeService) Generate(_ context.Context, params usecases.GenerateParams) ([]datastructure.AccessLink, error) {
	f.params = params
	return f.links, f.err
}

func (f *fakeService) GetLink(id string) (datastructure.AccessLink, error) {
	for _, l := range f.links {
		if l.ID == id {
			return l, nil
		}
	}
	return datastructure.AccessLink{}, pkg.WrapErrorf(nil, pkg.ErrNotFound, "access link with id: %s not found", id)
}

func (f *fakeService) ListLinks() ([]datastructure.AccessLink, error) {
	return f.links, f.err
}

func newTestRouter(t *testing.T, svc AccessLinkService) *httprouter.Router {
	router := httprouter.New()
	New(svc, zaptest.NewLogger(t)).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

var sampleLink = datastructure.NewAccessLink(
	datastructure.NewServiceNode(1002, -111.88, 40.75, datastructure.BusServiceNode, ""),
	datastructure.NewNetworkNode(2, -111.881, 40.751),
	0.0862, 2.72727)

func TestGenerateHandler(t *testing.T) {
	t.Run("numbers and strings are both accepted", func(t *testing.T) {
		svc := &fakeService{links: []datastructure.AccessLink{sampleLink}}
		router := newTestRouter(t, svc)

		rec := do(router, http.MethodPost, "/api/access-links", `{
			"units": "metric",
			"radius": 0.5,
			"network_nodes": [{"node_id": 2, "x_coord": -111.881, "y_coord": "40.751"}],
			"service_nodes": [{"node_id": "1002", "x_coord": -111.88, "y_coord": 40.75, "node_type": "bus_service_node", "directed_service_id": 3}]
		}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		assert.Equal(t, "metric", svc.params.Units)
		require.NotNil(t, svc.params.Radius)
		assert.Equal(t, 0.5, *svc.params.Radius)
		assert.Equal(t, []datastructure.NetworkNodeRecord{{NodeID: "2", XCoord: "-111.881", YCoord: "40.751"}}, svc.params.NetworkNodes)
		assert.Equal(t, []datastructure.ServiceNodeRecord{{
			NodeID: "1002", XCoord: "-111.88", YCoord: "40.75", DirectedServiceID: "3", NodeType: "bus_service_node",
		}}, svc.params.ServiceNodes)

		var resp struct {
			Data []datastructure.AccessLink `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "1002", resp.Data[0].ID)
		assert.Equal(t, int64(2), resp.Data[0].ToNodeID)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(newTestRouter(t, &fakeService{}), http.MethodPost, "/api/access-links", `{"units":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing node id", func(t *testing.T) {
		rec := do(newTestRouter(t, &fakeService{}), http.MethodPost, "/api/access-links",
			`{"network_nodes": [{"x_coord": 1, "y_coord": 2}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation error")
	})

	t.Run("non positive radius", func(t *testing.T) {
		for _, body := range []string{`{"radius": -1}`, `{"radius": 0}`} {
			svc := &fakeService{}
			rec := do(newTestRouter(t, svc), http.MethodPost, "/api/access-links", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Nil(t, svc.params.Radius, body)
		}
	})

	t.Run("omitted radius keeps the default", func(t *testing.T) {
		svc := &fakeService{}
		rec := do(newTestRouter(t, svc), http.MethodPost, "/api/access-links", `{}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, svc.params.Radius)
	})

	t.Run("error codes map to status", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
		}{
			{pkg.WrapErrorf(nil, pkg.ErrInvalidUnitSystem, "Invalid measurement System: x"), http.StatusBadRequest},
			{pkg.WrapErrorf(nil, pkg.ErrDataError, "row 0: x_coord \"a\" is not numeric"), http.StatusBadRequest},
			{pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "bad"), http.StatusBadRequest},
			{errors.New("boom"), http.StatusInternalServerError},
			{pkg.WrapErrorf(nil, errors.New("unmapped code"), "unmapped"), http.StatusInternalServerError},
		}
		for _, tt := range tests {
			rec := do(newTestRouter(t, &fakeService{err: tt.err}), http.MethodPost, "/api/access-links", `{}`)
			assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		}
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		rec := do(newTestRouter(t, &fakeService{err: errors.New("secret path /var/db")}), http.MethodPost, "/api/access-links", `{}`)
		assert.NotContains(t, rec.Body.String(), "secret")
		assert.Contains(t, rec.Body.String(), pkg.MessageInternalServerError)
	})
}

func TestGetHandler(t *testing.T) {
	router := newTestRouter(t, &fakeService{links: []datastructure.AccessLink{sampleLink}})

	rec := do(router, http.MethodGet, "/api/access-links/1002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data datastructure.AccessLink `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sampleLink.FromNodeID, resp.Data.FromNodeID)

	rec = do(router, http.MethodGet, "/api/access-links/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")

	rec = do(router, http.MethodGet, "/api/access-links", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transit_access_link"`)
}
