// Package bot turns chat commands into fleet status and uptime replies.
package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"gatewaymon/internal/civiltime"
	"gatewaymon/internal/report"
	"gatewaymon/internal/uptime"
)

// Update and Message mirror the fields of a Telegram update this bot
// actually reads.
type Update struct {
	Message       *Message `json:"message"`
	CallbackQuery *struct {
		Message *Message `json:"message"`
	} `json:"callback_query"`
}

type Message struct {
	Chat Chat   `json:"chat"`
	Text string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// Poller supplies the current fleet state.
type Poller interface {
	Poll(ctx context.Context) ([]uptime.GatewayState, error)
}

// Querier answers historical uptime questions.
type Querier interface {
	QueryUptime(ctx context.Context, gatewayID string, start, end time.Time, step time.Duration) (*uptime.Report, error)
}

type Bot struct {
	log         *zap.Logger
	poller      Poller
	querier     Querier
	names       *Names
	pending     *PendingTable
	defaultDays int
	now         func() time.Time
}

func New(log *zap.Logger, poller Poller, querier Querier, names *Names, pending *PendingTable, defaultDays int) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	if defaultDays <= 0 {
		defaultDays = 7
	}
	return &Bot{
		log:         log,
		poller:      poller,
		querier:     querier,
		names:       names,
		pending:     pending,
		defaultDays: defaultDays,
		now:         time.Now,
	}
}

// HandleUpdate routes one incoming update and returns the chat to answer
// plus the reply blocks. A chat id of zero means nothing to send.
func (b *Bot) HandleUpdate(ctx context.Context, upd Update) (int64, []string) {
	msg := upd.Message
	if msg == nil && upd.CallbackQuery != nil {
		msg = upd.CallbackQuery.Message
	}
	if msg == nil {
		return 0, nil
	}
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		return chatID, []string{helpText()}
	case text == "/ping":
		return chatID, []string{"<b>pong</b>"}
	case strings.HasPrefix(text, "/status"):
		filter := report.FilterAll
		switch text {
		case "/status_ok":
			filter = report.FilterUp
		case "/status_nok":
			filter = report.FilterDown
		}
		return chatID, b.statusBlocks(ctx, filter)
	case strings.HasPrefix(text, "/uptime"):
		args := strings.Fields(text)[1:]
		if len(args) == 0 {
			b.pending.Put(chatID, actionUptime)
			return chatID, []string{"<i>Qual gateway?</i> Responde com o nome."}
		}
		name, days := parseUptimeArgs(args, b.defaultDays)
		return chatID, b.uptimeBlocks(ctx, name, days)
	default:
		if action, ok := b.pending.Take(chatID); ok && action == actionUptime &&
			text != "" && !strings.HasPrefix(text, "/") {
			return chatID, b.uptimeBlocks(ctx, text, b.defaultDays)
		}
		return chatID, []string{"<i>Diz</i> <code>/status</code> <i>para ver a tabela.</i>"}
	}
}

const actionUptime = "uptime"

func helpText() string {
	return strings.Join([]string{
		"<b>Comandos</b>",
		"• <code>/status</code> — todos os gateways",
		"• <code>/status_ok</code> — só ✅",
		"• <code>/status_nok</code> — só ❌",
		"• <code>/uptime &lt;gateway&gt; [dias]</code> — histórico",
		"• <code>/ping</code> — teste",
	}, "\n")
}

// parseUptimeArgs splits "/uptime <name…> [days]"; gateway names may
// contain spaces, so only a trailing integer counts as the day count.
func parseUptimeArgs(args []string, defaultDays int) (string, int) {
	days := defaultDays
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil && n > 0 {
			days = n
			args = args[:len(args)-1]
		}
	}
	return strings.Join(args, " "), days
}

// statusBlocks polls the fleet now and renders the status table. Failures
// degrade to a visible reply, never a silent hang.
func (b *Bot) statusBlocks(ctx context.Context, filter report.Filter) []string {
	states, err := b.poller.Poll(ctx)
	if err != nil {
		b.log.Warn("status_poll_failed", zap.Error(err))
		return []string{"<i>Falha ao obter gateways — ver logs.</i>"}
	}
	rows := make([]report.StatusRow, 0, len(states))
	for _, g := range states {
		when := "—"
		if !g.LastSeen.IsZero() {
			when = g.LastSeen.In(civiltime.Region).Format("02-01-2006 15:04")
		}
		rows = append(rows, report.StatusRow{
			Name: b.names.Display(g.ID),
			When: when,
			Up:   g.State == uptime.StateUp,
		})
	}
	return report.SplitChunks(report.FormatStatusTable(rows, filter), report.ChunkLimit)
}

// uptimeBlocks reconstructs the last N days for one gateway.
func (b *Bot) uptimeBlocks(ctx context.Context, input string, days int) []string {
	code := b.names.Resolve(input)
	end := b.now()
	start := end.Add(-time.Duration(days) * 24 * time.Hour)

	rep, err := b.querier.QueryUptime(ctx, code, start, end, stepForDays(days))
	if err != nil {
		b.log.Warn("uptime_query_failed", zap.String("gateway", code), zap.Error(err))
		return []string{"<i>Falha ao reconstruir a série — ver logs.</i>"}
	}
	return report.SplitChunks(report.FormatUptimeReport(b.names.Display(code), rep), report.ChunkLimit)
}

// stepForDays keeps the raster strip at a readable length.
func stepForDays(days int) time.Duration {
	switch {
	case days <= 1:
		return 30 * time.Minute
	case days <= 7:
		return 6 * time.Hour
	default:
		return 24 * time.Hour
	}
}
