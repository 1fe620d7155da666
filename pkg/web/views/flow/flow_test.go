package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	flow "github.com/openwms/procflow/pkg/core/flow"
)

type fakeFlowService struct {
	flows map[uuid.UUID]*flow.FlowDetailResp

	lastCreate *flow.CreateFlowReq
	lastConf   *flow.SaveNodeConfReq
}

func newFakeFlowService() *fakeFlowService {
	return &fakeFlowService{flows: map[uuid.UUID]*flow.FlowDetailResp{}}
}

func (f *fakeFlowService) CreateFlow(_ context.Context, req *flow.CreateFlowReq) (*flow.FlowResp, error) {
	f.lastCreate = req
	resp := &flow.FlowResp{UUID: uuid.New(), Name: req.Name, ProjectName: req.ProjectName, IsActive: true}
	f.flows[resp.UUID] = &flow.FlowDetailResp{FlowResp: *resp, FlowData: req.FlowData}
	return resp, nil
}

func (f *fakeFlowService) UpdateFlow(_ context.Context, req *flow.UpdateFlowReq) (*flow.FlowResp, error) {
	detail, ok := f.flows[req.UUID]
	if !ok {
		return nil, code.FlowNotFound
	}
	if req.Name != "" {
		detail.Name = req.Name
	}
	return &detail.FlowResp, nil
}

func (f *fakeFlowService) GetFlow(_ context.Context, id uuid.UUID) (*flow.FlowDetailResp, error) {
	detail, ok := f.flows[id]
	if !ok {
		return nil, code.FlowNotFound
	}
	return detail, nil
}

func (f *fakeFlowService) ListFlows(_ context.Context, req *flow.ListFlowReq) (*common.PageResp[[]*flow.FlowResp], error) {
	list := make([]*flow.FlowResp, 0, len(f.flows))
	for _, d := range f.flows {
		list = append(list, &d.FlowResp)
	}
	return &common.PageResp[[]*flow.FlowResp]{
		Total: int64(len(list)), Page: req.Page, PageSize: req.PageSize, List: list,
	}, nil
}

func (f *fakeFlowService) DeleteFlow(_ context.Context, id uuid.UUID) error {
	if _, ok := f.flows[id]; !ok {
		return code.FlowNotFound
	}
	delete(f.flows, id)
	return nil
}

func (f *fakeFlowService) SaveNodeConfiguration(_ context.Context, req *flow.SaveNodeConfReq) (*flow.NodeConfResp, error) {
	f.lastConf = req
	return &flow.NodeConfResp{NodeID: req.NodeID, Kind: req.Kind, TypeID: req.TypeID, Configuration: req.Values}, nil
}

func (f *fakeFlowService) GetNodeConfiguration(_ context.Context, nodeID uuid.UUID) (*flow.NodeConfResp, error) {
	return nil, code.RecordNotFound.WithMsg(nodeID.String())
}

func (f *fakeFlowService) DeleteNodeConfiguration(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeFlowService) ExportFlow(_ context.Context, id uuid.UUID) (*flow.ExportResp, error) {
	detail, ok := f.flows[id]
	if !ok {
		return nil, code.FlowNotFound
	}
	return &flow.ExportResp{Flow: detail.FlowResp, FlowData: detail.FlowData}, nil
}

func newTestRouter(svc flow.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFlowHandle(svc)
	g := gin.New()
	g.POST("/flows", h.CreateFlow)
	g.GET("/flows", h.ListFlows)
	g.PUT("/flows", h.UpdateFlow)
	g.GET("/flows/:flow_uuid", h.GetFlow)
	g.DELETE("/flows/:flow_uuid", h.DeleteFlow)
	g.GET("/flows/:flow_uuid/export", h.ExportFlow)
	g.POST("/flows/configurations", h.SaveNodeConfiguration)
	return g
}

func doJSON(t *testing.T, g *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestCreateFlowHandler(t *testing.T) {
	svc := newFakeFlowService()
	g := newTestRouter(svc)

	w := doJSON(t, g, http.MethodPost, "/flows", gin.H{
		"name": "Inbound Flow", "project_name": "dc-east",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastCreate)
	assert.Equal(t, "Inbound Flow", svc.lastCreate.Name)

	var resp struct {
		Code int           `json:"code"`
		Data flow.FlowResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "Inbound Flow", resp.Data.Name)
}

func TestCreateFlowMissingName(t *testing.T) {
	g := newTestRouter(newFakeFlowService())
	w := doJSON(t, g, http.MethodPost, "/flows", gin.H{"project_name": "dc-east"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFlowNotFound(t *testing.T) {
	g := newTestRouter(newFakeFlowService())
	w := doJSON(t, g, http.MethodGet, "/flows/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFlowBadUUID(t *testing.T) {
	g := newTestRouter(newFakeFlowService())
	w := doJSON(t, g, http.MethodGet, "/flows/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteFlowRoundTrip(t *testing.T) {
	svc := newFakeFlowService()
	g := newTestRouter(svc)

	w := doJSON(t, g, http.MethodPost, "/flows", gin.H{"name": "Doomed"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data flow.FlowResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(t, g, http.MethodDelete, "/flows/"+resp.Data.UUID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, g, http.MethodGet, "/flows/"+resp.Data.UUID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveNodeConfigurationHandler(t *testing.T) {
	svc := newFakeFlowService()
	g := newTestRouter(svc)

	w := doJSON(t, g, http.MethodPost, "/flows/configurations", gin.H{
		"flow_uuid": uuid.New(),
		"node_id":   uuid.New(),
		"kind":      "location",
		"type_id":   "receiving_dock",
		"values":    gin.H{"dock_number": "DOCK-01"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastConf)
	assert.Equal(t, "receiving_dock", svc.lastConf.TypeID)
}

func TestExportFlowDownloadHeaders(t *testing.T) {
	svc := newFakeFlowService()
	g := newTestRouter(svc)

	w := doJSON(t, g, http.MethodPost, "/flows", gin.H{"name": "Exported"})
	var resp struct {
		Data flow.FlowResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(t, g, http.MethodGet, "/flows/"+resp.Data.UUID.String()+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
