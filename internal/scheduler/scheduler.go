package scheduler

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/service"
	"SignalSentinel/internal/watchlist"

	"github.com/robfig/cron/v3"
)

// Sender delivers a chat message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the daily watchlist analysis and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Service   *service.Service
	Watchlist *watchlist.Manager
	Notifier  Sender
	Ctx       context.Context

	dailyID cron.EntryID
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *service.Service, wl *watchlist.Manager, n Sender) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Service:   svc,
		Watchlist: wl,
		Notifier:  n,
		Ctx:       ctx,
	}
}

// RegisterDaily registers the watchlist analysis on dailyCron.
func (s *Scheduler) RegisterDaily(dailyCron string) error {
	id, err := s.Cron.AddFunc(dailyCron, s.dailyTask)
	if err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	s.dailyID = id
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	symbols := s.Watchlist.Symbols()
	log.Printf("[INFO] running daily analysis for %d symbols", len(symbols))
	for _, sym := range symbols {
		if s.Ctx.Err() != nil {
			return
		}
		s.trySend(s.analyze(sym))
	}
}

// analyze runs one symbol and returns the message to send.
func (s *Scheduler) analyze(symbol string) string {
	rep, err := s.Service.Run(s.Ctx, symbol)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", symbol, err)
		return fmt.Sprintf("❌ %s 分析失败: %s", html.EscapeString(symbol), html.EscapeString(err.Error()))
	}
	s.Watchlist.MarkRun(symbol, time.Now())
	return notifier.FormatAnalysis(rep.Context, rep.Result, rep.Consensus)
}

const helpText = "可用命令:\n" +
	"• /analyze 代码 - 立即分析\n" +
	"• /watch 代码 - 加入自选\n" +
	"• /unwatch 代码 - 移出自选\n" +
	"• /list - 查看自选\n" +
	"• /history 代码 - 历史信号\n" +
	"• /status - 运行状态"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Telegram appends @botname in group chats.
	cmd, _, _ := strings.Cut(fields[0], "@")
	arg := ""
	if len(fields) > 1 {
		arg = watchlist.Normalize(fields[1])
	}

	switch cmd {
	case "/analyze", "分析":
		if arg == "" {
			return "用法: /analyze 代码"
		}
		return s.analyze(arg)
	case "/watch":
		if arg == "" {
			return "用法: /watch 代码"
		}
		added, err := s.Watchlist.Add(arg)
		if err != nil {
			return fmt.Sprintf("❌ 保存失败: %v", err)
		}
		if !added {
			return fmt.Sprintf("%s 已在自选列表中", arg)
		}
		return fmt.Sprintf("✅ 已加入自选: %s", arg)
	case "/unwatch":
		if arg == "" {
			return "用法: /unwatch 代码"
		}
		removed, err := s.Watchlist.Remove(arg)
		if err != nil {
			return fmt.Sprintf("❌ 保存失败: %v", err)
		}
		if !removed {
			return fmt.Sprintf("%s 不在自选列表中", arg)
		}
		return fmt.Sprintf("✅ 已移出自选: %s", arg)
	case "/list", "查看自选":
		return notifier.FormatWatchlist(s.Watchlist.Symbols())
	case "/history":
		if arg == "" {
			return "用法: /history 代码"
		}
		runs, err := s.Service.History(arg, 10)
		if err != nil {
			return fmt.Sprintf("❌ 查询失败: %v", err)
		}
		return notifier.FormatRunHistory(arg, runs)
	case "/status":
		return s.status()
	default:
		return helpText
	}
}

func (s *Scheduler) status() string {
	var b strings.Builder
	b.WriteString("⚙️ <b>运行状态</b>\n\n")
	if s.dailyID != 0 {
		if next := s.Cron.Entry(s.dailyID).Next; !next.IsZero() {
			b.WriteString(fmt.Sprintf("下次分析: %s\n", next.Format("2006-01-02 15:04")))
		}
	}
	symbols := s.Watchlist.Symbols()
	b.WriteString(fmt.Sprintf("自选数量: %d\n", len(symbols)))
	for _, sym := range symbols {
		last := "未运行"
		if t, ok := s.Watchlist.LastRun(sym); ok {
			last = t.Format("2006-01-02 15:04")
		}
		b.WriteString(fmt.Sprintf("• %s  %s\n", html.EscapeString(sym), last))
	}
	return b.String()
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
