package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/chargesense/internal/adapters/http/api"
	service "github.com/okian/chargesense/internal/app"
	"github.com/okian/chargesense/internal/domain/types"
	"github.com/okian/chargesense/internal/testutil"
	"github.com/okian/chargesense/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type errorBody struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	MissingTabs []string `json:"missingTabs"`
}

func newHandler(opts ...api.Option) http.Handler {
	svc := service.New(service.WithLogger(logger.Nop()))
	opts = append([]api.Option{api.WithLogger(logger.Nop())}, opts...)
	srv := api.NewServer(svc, svc, opts...)
	mux := http.NewServeMux()
	srv.Register(context.Background(), mux)
	return srv.Handler(mux)
}

func uploadRequest(field, filename string, data []byte) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		panic(err)
	}
	_, _ = part.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) errorBody {
	var body errorBody
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body
}

func TestRoot(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler()

		Convey("GET / returns the banner", func() {
			w := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]string
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["message"], ShouldEqual, "ChargeSense AI Backend is running. Use POST /upload to send Excel or CSV files.")
		})

		Convey("POST / is not allowed", func() {
			w := serve(h, httptest.NewRequest(http.MethodPost, "/", http.NoBody))

			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(decodeError(w).Code, ShouldEqual, "method_not_allowed")
		})

		Convey("Unknown paths are not found", func() {
			w := serve(h, httptest.NewRequest(http.MethodGet, "/leaderboard", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestUpload(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler()

		Convey("When a full week workbook is uploaded", func() {
			data, err := testutil.XLSX(testutil.Week()...)
			So(err, ShouldBeNil)
			w := serve(h, uploadRequest("file", "week.xlsx", data))

			Convey("Then the summary is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")

				var summary types.Summary
				So(json.Unmarshal(w.Body.Bytes(), &summary), ShouldBeNil)
				So(summary.CustomerSegments, ShouldHaveLength, 4)
				So(summary.WeeklyCharges, ShouldHaveLength, 5)
				So(summary.ChargeDistribution, ShouldHaveLength, 7)
				So(summary.BusUsage, ShouldHaveLength, 20)
			})

			Convey("Then a request ID is echoed", func() {
				So(w.Header().Get("X-Request-ID"), ShouldNotBeBlank)
			})
		})

		Convey("When a charge cell spells out infinity", func() {
			clean, err := testutil.XLSX(testutil.Week()...)
			So(err, ShouldBeNil)
			var baseline types.Summary
			So(json.Unmarshal(serve(h, uploadRequest("file", "week.xlsx", clean)).Body.Bytes(), &baseline), ShouldBeNil)

			week := testutil.Week()
			week[0].Rows = append(week[0].Rows, []any{"Rose", "Tyler", "Infinity", nil, nil, nil, nil, "-inf", nil})
			data, err := testutil.XLSX(week...)
			So(err, ShouldBeNil)
			w := serve(h, uploadRequest("file", "week.xlsx", data))

			Convey("Then the summary still encodes and the cell counts as zero", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.Len(), ShouldBeGreaterThan, 0)

				var summary types.Summary
				So(json.Unmarshal(w.Body.Bytes(), &summary), ShouldBeNil)
				So(summary.WeeklyCharges, ShouldHaveLength, 5)
				So(summary.WeeklyCharges[0].Day, ShouldEqual, baseline.WeeklyCharges[0].Day)
				So(summary.WeeklyCharges[0].TotalCharge, ShouldEqual, baseline.WeeklyCharges[0].TotalCharge)
			})
		})

		Convey("When the Wednesday tab is missing", func() {
			week := testutil.Week()
			week = append(week[:2], week[3:]...)
			data, err := testutil.XLSX(week...)
			So(err, ShouldBeNil)

			w := serve(h, uploadRequest("file", "week.xlsx", data))

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decodeError(w)
			So(body.Code, ShouldEqual, "missing_tabs")
			So(body.Message, ShouldEqual, "Missing required tabs: Wed")
			So(body.MissingTabs, ShouldResemble, []string{"Wed"})
		})

		Convey("When the file type is unsupported", func() {
			w := serve(h, uploadRequest("file", "notes.txt", []byte("hello")))

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decodeError(w)
			So(body.Code, ShouldEqual, "unsupported_file_type")
			So(body.Message, ShouldEqual, "Unsupported file type. Upload CSV or Excel.")
		})

		Convey("When the workbook cannot be decoded", func() {
			w := serve(h, uploadRequest("file", "week.xlsx", []byte("garbage")))

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decodeError(w)
			So(body.Code, ShouldEqual, "file_read_failed")
			So(body.Message, ShouldStartWith, "Failed to read file: ")
		})

		Convey("When the form has no file field", func() {
			w := serve(h, uploadRequest("attachment", "week.xlsx", []byte("x")))

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w).Code, ShouldEqual, "bad_request")
		})

		Convey("When the method is GET", func() {
			w := serve(h, httptest.NewRequest(http.MethodGet, "/upload", http.NoBody))

			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
		})
	})

	Convey("Given a small upload limit", t, func() {
		h := newHandler(api.WithMaxUploadBytes(512))

		Convey("An oversized upload is rejected", func() {
			w := serve(h, uploadRequest("file", "week.csv", bytes.Repeat([]byte("a,b\n"), 1024)))

			So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
			So(decodeError(w).Code, ShouldEqual, "payload_too_large")
		})
	})

	Convey("Given a rate limit with a burst of one", t, func() {
		h := newHandler(api.WithRateLimit(0.001, 1))

		Convey("The second upload is rejected", func() {
			first := serve(h, uploadRequest("file", "a.txt", []byte("x")))
			second := serve(h, uploadRequest("file", "a.txt", []byte("x")))

			So(first.Code, ShouldEqual, http.StatusBadRequest)
			So(second.Code, ShouldEqual, http.StatusTooManyRequests)
			So(decodeError(second).Code, ShouldEqual, "rate_limited")
		})

		Convey("Other routes are not limited", func() {
			_ = serve(h, uploadRequest("file", "a.txt", []byte("x")))
			w := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given the API handler with allowed origins", t, func() {
		h := newHandler(api.WithAllowedOrigins([]string{"http://localhost:3000"}))

		Convey("A preflight from an allowed origin is answered", func() {
			req := httptest.NewRequest(http.MethodOptions, "/upload", http.NoBody)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", "POST")
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			w := serve(h, req)

			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:3000")
			So(w.Header().Get("Access-Control-Allow-Credentials"), ShouldEqual, "true")
			So(w.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, "POST")
			So(w.Header().Get("Access-Control-Allow-Headers"), ShouldEqual, "content-type")
		})

		Convey("A request from another origin gets no CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set("Origin", "http://evil.example")
			w := serve(h, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeBlank)
		})

		Convey("A caller supplied request ID is kept", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set("X-Request-ID", "abc-123")
			w := serve(h, req)

			So(w.Header().Get("X-Request-ID"), ShouldEqual, "abc-123")
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler()

		Convey("GET /healthz serves Prometheus metrics", func() {
			_ = serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
			w := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "chargesense_http_requests_total")
		})

		Convey("GET /stats reports upload counters", func() {
			_ = serve(h, uploadRequest("file", "a.pdf", []byte("x")))
			w := serve(h, httptest.NewRequest(http.MethodGet, "/stats", http.NoBody))

			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["uploadsRejected"], ShouldEqual, 1.0)
			So(stats["uploadsAccepted"], ShouldEqual, 0.0)
		})
	})
}
