package httpadapter

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logging "github.com/ipfs/go-log/v2"

	api "receivables/internal/api"
	"receivables/internal/domain"
	"receivables/internal/ports"
)

var log = logging.Logger("http")

var _ api.StrictServerInterface = (*Server)(nil)

// Reader serves the read-only lookups behind GET endpoints.
type Reader interface {
	GetAuction(ctx context.Context, id string) (domain.Auction, error)
	GetPayment(ctx context.Context, id string) (domain.MaturityPayment, error)
}

// Server implements the generated StrictServerInterface for the manual and
// operator endpoints. Scheduled work does not go through it.
type Server struct {
	auctions ports.Auctions
	bids     ports.Bids
	maturity ports.Maturity
	reader   Reader
	timeout  time.Duration
}

func New(auctions ports.Auctions, bids ports.Bids, maturity ports.Maturity, reader Reader) *Server {
	return &Server{auctions: auctions, bids: bids, maturity: maturity, reader: reader, timeout: 60 * time.Second}
}

// Routes returns a chi.Router mounting the generated handlers behind the
// request middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	handler := api.NewStrictHandlerWithOptions(s, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  writeBadRequest,
		ResponseErrorHandlerFunc: writeError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: writeBadRequest,
	})
	return r
}

func (s *Server) GetHealthz(context.Context, api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debugw("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"duration", time.Since(start), "request_id", middleware.GetReqID(r.Context()))
	})
}
