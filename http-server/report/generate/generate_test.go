package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"flotilla-golang/internal/service/report"
)

type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) Generate(ctx context.Context, p report.Params) (*report.Response, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Response), args.Error(1)
}

func doRequest(t *testing.T, gen ReportGenerator, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := GenerateReport(slog.Default(), gen)
	req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGenerateReport_OK(t *testing.T) {
	gen := new(MockReportGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p report.Params) bool {
		// la ventana incluye completo el día final del usuario
		return p.From.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) &&
			p.To.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&report.Response{Summary: report.Summary{AssetCount: 2}}, nil)

	rr := doRequest(t, gen, `{"dateFrom":"2024-01-01","dateTo":"2024-01-31"}`)

	assert.Equal(t, http.StatusOK, rr.Code)

	var rep report.Response
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.Equal(t, 2, rep.Summary.AssetCount)
	gen.AssertExpectations(t)
}

func TestGenerateReport_PassesFilters(t *testing.T) {
	gen := new(MockReportGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p report.Params) bool {
		return p.BusinessUnitID != nil && *p.BusinessUnitID == 1 &&
			p.PlantID != nil && *p.PlantID == 3 &&
			p.HideZeroActivity
	})).Return(&report.Response{}, nil)

	rr := doRequest(t, gen, `{"dateFrom":"2024-01-01","dateTo":"2024-01-31","businessUnitId":1,"plantId":3,"hideZeroActivity":true}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	gen.AssertExpectations(t)
}

func TestGenerateReport_BadJSON(t *testing.T) {
	gen := new(MockReportGenerator)

	rr := doRequest(t, gen, `{"dateFrom":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	gen.AssertNotCalled(t, "Generate")
}

func TestGenerateReport_BadDate(t *testing.T) {
	gen := new(MockReportGenerator)

	rr := doRequest(t, gen, `{"dateFrom":"01/01/2024","dateTo":"2024-01-31"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "dateFrom")
	gen.AssertNotCalled(t, "Generate")
}

func TestGenerateReport_WindowReversed(t *testing.T) {
	gen := new(MockReportGenerator)

	rr := doRequest(t, gen, `{"dateFrom":"2024-02-01","dateTo":"2024-01-01"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	gen.AssertNotCalled(t, "Generate")
}

func TestGenerateReport_ServiceError(t *testing.T) {
	gen := new(MockReportGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	rr := doRequest(t, gen, `{"dateFrom":"2024-01-01","dateTo":"2024-01-31"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp ErrResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}
