// Package httpapi exposes the service over HTTP: health, the chat
// webhook, and a JSON uptime endpoint for dashboards.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"gatewaymon/internal/bot"
	"gatewaymon/internal/civiltime"
)

// BlockSender delivers reply blocks back to a chat.
type BlockSender interface {
	SendBlocks(ctx context.Context, chatID int64, blocks []string) error
}

type Server struct {
	log           *zap.Logger
	bot           *bot.Bot
	querier       bot.Querier
	sender        BlockSender
	webhookSecret string
	defaultDays   int
}

func NewServer(log *zap.Logger, b *bot.Bot, querier bot.Querier, sender BlockSender, webhookSecret string, defaultDays int) *Server {
	if defaultDays <= 0 {
		defaultDays = 7
	}
	return &Server{
		log:           log,
		bot:           b,
		querier:       querier,
		sender:        sender,
		webhookSecret: webhookSecret,
		defaultDays:   defaultDays,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(rateLimit(240, 60))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/webhook", s.handleWebhook)
	r.Post("/webhook/{secret}", s.handleWebhook)
	r.Get("/api/uptime", s.handleUptime)

	return r
}

// handleWebhook feeds one chat update to the bot. Telegram retries
// anything that is not a 2xx, so malformed updates are acked and dropped
// rather than bounced.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.webhookSecret != "" && chi.URLParam(r, "secret") != s.webhookSecret {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var upd bot.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.log.Warn("webhook_bad_update", zap.Error(err))
		_, _ = w.Write([]byte("OK"))
		return
	}

	chatID, blocks := s.bot.HandleUpdate(r.Context(), upd)
	if chatID != 0 && len(blocks) > 0 && s.sender != nil {
		if err := s.sender.SendBlocks(r.Context(), chatID, blocks); err != nil {
			s.log.Warn("webhook_send_error", zap.Int64("chat", chatID), zap.Error(err))
		}
	}
	_, _ = w.Write([]byte("OK"))
}

type apiInterval struct {
	From  string `json:"from"`
	To    string `json:"to"`
	State int    `json:"state"`
}

type apiTransition struct {
	At    string `json:"at"`
	State int    `json:"state"`
}

type apiReport struct {
	Gateway     string          `json:"gateway"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	UpFraction  float64         `json:"up_fraction"`
	UpSeconds   float64         `json:"up_seconds"`
	DownSeconds float64         `json:"down_seconds"`
	Intervals   []apiInterval   `json:"intervals"`
	Slots       []bool          `json:"slots"`
	Transitions []apiTransition `json:"transitions"`
}

func (s *Server) handleUptime(w http.ResponseWriter, r *http.Request) {
	gw := r.URL.Query().Get("gw")
	if gw == "" {
		http.Error(w, "missing gw parameter", http.StatusBadRequest)
		return
	}
	days := s.defaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	step := time.Hour
	if v := r.URL.Query().Get("step"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			step = d
		}
	}

	end := time.Now()
	start := end.Add(-time.Duration(days) * 24 * time.Hour)
	rep, err := s.querier.QueryUptime(r.Context(), gw, start, end, step)
	if err != nil {
		s.log.Warn("api_uptime_error", zap.String("gateway", gw), zap.Error(err))
		http.Error(w, "failed to reconstruct series", http.StatusBadGateway)
		return
	}

	out := apiReport{
		Gateway:     rep.GatewayID,
		Start:       civiltime.Encode(rep.Start),
		End:         civiltime.Encode(rep.End),
		UpFraction:  rep.UpFraction,
		UpSeconds:   rep.UpDuration.Seconds(),
		DownSeconds: rep.DownDuration.Seconds(),
		Slots:       rep.Slots,
		Intervals:   make([]apiInterval, 0, len(rep.Intervals)),
		Transitions: make([]apiTransition, 0, len(rep.Transitions)),
	}
	for _, iv := range rep.Intervals {
		out.Intervals = append(out.Intervals, apiInterval{
			From:  civiltime.Encode(iv.From),
			To:    civiltime.Encode(iv.To),
			State: iv.State,
		})
	}
	for _, ev := range rep.Transitions {
		out.Transitions = append(out.Transitions, apiTransition{
			At:    civiltime.Encode(ev.At),
			State: ev.State,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
