package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/evaluation"
	remdomain "github.com/zoeccivil/licitaciones-engine/internal/domain/remediation"
	"github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"github.com/zoeccivil/licitaciones-engine/internal/testutil/storemock"
	"github.com/zoeccivil/licitaciones-engine/internal/testutil/uowmock"
	uc "github.com/zoeccivil/licitaciones-engine/internal/usecase/remediation"
)

func remHandler(tenders *storemock.TenderRepo, rems *storemock.RemediationRepo) *RemediationHandler {
	// every document in these fixtures carries a recorded Phase-A failure
	evals := &storemock.EvaluationRepo{
		ListDisqualificationsFn: func(ctx context.Context, tenderPK uint64) ([]domain.Disqualification, error) {
			return []domain.Disqualification{{TenderID: tenderPK, DocumentID: 7, BidderName: "Alfa SA"}}, nil
		},
	}
	u := uc.NewUsecase(uowmock.Passthrough(tenders, evals, rems, nil), nil)
	return NewRemediationHandler(u)
}

func remTenderRepo() *storemock.TenderRepo {
	return &storemock.TenderRepo{
		GetByTenderIDFn: func(ctx context.Context, tenderID string) (*tender.Tender, error) {
			return &tender.Tender{ID: 1, TenderID: tenderID}, nil
		},
		GetDocumentFn: func(ctx context.Context, documentPK uint64) (*tender.Document, error) {
			return &tender.Document{ID: documentPK, TenderID: 1, Remediable: true}, nil
		},
	}
}

func TestCreateRemediation_Success(t *testing.T) {
	e := newEchoWithValidator()
	var created *remdomain.Request
	rems := &storemock.RemediationRepo{
		CreateFn: func(ctx context.Context, r *remdomain.Request) error { created = r; return nil },
	}
	h := remHandler(remTenderRepo(), rems)
	e.POST("/remediations", h.Create)

	body := map[string]any{"tender_id": testTenderID, "document_id": 7, "window_days": 3}
	req := httptest.NewRequest(stdhttp.MethodPost, "/remediations", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if created == nil || created.DocumentID != 7 || created.State != remdomain.StatePending {
		t.Fatalf("created = %+v", created)
	}
	var dto uc.RequestDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := created.RequestedAt.AddDate(0, 0, 3); !dto.Deadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", dto.Deadline, want)
	}
}

func TestCreateRemediation_ValidationFailed(t *testing.T) {
	e := newEchoWithValidator()
	h := remHandler(remTenderRepo(), &storemock.RemediationRepo{})
	e.POST("/remediations", h.Create)

	cases := []map[string]any{
		{"document_id": 7},                            // missing tender_id
		{"tender_id": "nope", "document_id": 7},       // not hex32
		{"tender_id": testTenderID},                   // missing document_id
		{"tender_id": testTenderID, "document_id": 7, "window_days": -1},
	}
	for _, body := range cases {
		req := httptest.NewRequest(stdhttp.MethodPost, "/remediations", mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != stdhttp.StatusUnprocessableEntity {
			t.Fatalf("body %v => status %d, want 422", body, rec.Code)
		}
	}
}

func TestCreateRemediation_Duplicate(t *testing.T) {
	e := newEchoWithValidator()
	rems := &storemock.RemediationRepo{
		GetPendingFn: func(ctx context.Context, tenderPK, documentPK uint64) (*remdomain.Request, error) {
			return &remdomain.Request{State: remdomain.StatePending}, nil
		},
	}
	h := remHandler(remTenderRepo(), rems)
	e.POST("/remediations", h.Create)

	body := map[string]any{"tender_id": testTenderID, "document_id": 7}
	req := httptest.NewRequest(stdhttp.MethodPost, "/remediations", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestCreateRemediation_NotRemediable(t *testing.T) {
	e := newEchoWithValidator()
	tenders := remTenderRepo()
	tenders.GetDocumentFn = func(ctx context.Context, documentPK uint64) (*tender.Document, error) {
		return &tender.Document{ID: documentPK, TenderID: 1, Remediable: false}, nil
	}
	h := remHandler(tenders, &storemock.RemediationRepo{})
	e.POST("/remediations", h.Create)

	body := map[string]any{"tender_id": testTenderID, "document_id": 7}
	req := httptest.NewRequest(stdhttp.MethodPost, "/remediations", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestDeliverRemediation(t *testing.T) {
	requestID := strings.Repeat("b", 32)

	t.Run("on time", func(t *testing.T) {
		e := newEchoWithValidator()
		rems := &storemock.RemediationRepo{
			GetByRequestIDFn: func(ctx context.Context, id string) (*remdomain.Request, error) {
				return &remdomain.Request{RequestID: id, State: remdomain.StatePending, Deadline: time.Now().UTC().Add(24 * time.Hour)}, nil
			},
		}
		h := remHandler(remTenderRepo(), rems)
		e.POST("/remediations/:request_id/deliver", h.Deliver)

		req := httptest.NewRequest(stdhttp.MethodPost, "/remediations/"+requestID+"/deliver", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "delivered") {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})

	t.Run("after deadline", func(t *testing.T) {
		e := newEchoWithValidator()
		rems := &storemock.RemediationRepo{
			GetByRequestIDFn: func(ctx context.Context, id string) (*remdomain.Request, error) {
				return &remdomain.Request{RequestID: id, State: remdomain.StatePending, Deadline: time.Now().UTC().Add(-24 * time.Hour)}, nil
			},
		}
		h := remHandler(remTenderRepo(), rems)
		e.POST("/remediations/:request_id/deliver", h.Deliver)

		req := httptest.NewRequest(stdhttp.MethodPost, "/remediations/"+requestID+"/deliver", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != stdhttp.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		e := newEchoWithValidator()
		h := remHandler(remTenderRepo(), &storemock.RemediationRepo{})
		e.POST("/remediations/:request_id/deliver", h.Deliver)

		req := httptest.NewRequest(stdhttp.MethodPost, "/remediations/"+requestID+"/deliver", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != stdhttp.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestSweepRemediations(t *testing.T) {
	e := newEchoWithValidator()
	due := []remdomain.Request{{ID: 1, State: remdomain.StatePending, Deadline: time.Now().UTC().Add(-time.Hour)}}
	rems := &storemock.RemediationRepo{
		ListPendingPastDeadlineFn: func(ctx context.Context, asOf time.Time) ([]remdomain.Request, error) {
			return due, nil
		},
	}
	h := remHandler(remTenderRepo(), rems)
	e.POST("/remediations/sweep", h.Sweep)

	req := httptest.NewRequest(stdhttp.MethodPost, "/remediations/sweep", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["expired"] != 1 {
		t.Fatalf("expired = %d, want 1", out["expired"])
	}
}

func TestRemediationHistory(t *testing.T) {
	e := newEchoWithValidator()
	rems := &storemock.RemediationRepo{
		ListByTenderFn: func(ctx context.Context, tenderPK uint64) ([]remdomain.Request, error) {
			return []remdomain.Request{
				{RequestID: strings.Repeat("b", 32), State: remdomain.StateDelivered},
			}, nil
		},
	}
	h := remHandler(remTenderRepo(), rems)
	e.GET("/tenders/:tender_id/remediations", h.History)

	req := httptest.NewRequest(stdhttp.MethodGet, "/tenders/"+testTenderID+"/remediations", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "delivered") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
