// Package console текстовый интерфейс к контроллеру календаря:
// команды из строк ввода, сетка месяца и слоты в выводе.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingCalendar/internal/controller"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

const defaultWaitTimeout = 10 * time.Second

// ErrQuit возвращается командой quit
var ErrQuit = errors.New("console: quit")

// Session сеанс работы с одним календарем
type Session struct {
	ctrl        *controller.Controller
	out         io.Writer
	waitTimeout time.Duration
}

// NewSession создает сеанс, выводящий результаты в out
func NewSession(ctrl *controller.Controller, out io.Writer) *Session {
	return &Session{
		ctrl:        ctrl,
		out:         out,
		waitTimeout: defaultWaitTimeout,
	}
}

// Run читает команды построчно до конца ввода или команды quit.
// Ошибки команд печатаются и не прерывают сеанс.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.Exec(ctx, scanner.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Exec выполняет одну команду
func (s *Session) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "show":
		s.printGrid()
		return nil
	case "state":
		s.printState()
		return nil
	case "next":
		s.ctrl.NavigateMonth(1)
		s.printGrid()
		return nil
	case "prev":
		s.ctrl.NavigateMonth(-1)
		s.printGrid()
		return nil
	case "clear":
		s.ctrl.ClearSelection()
		s.printState()
		return nil
	case "select":
		return s.selectDate(args)
	case "time":
		return s.selectTime(args)
	case "key":
		return s.handleKey(args)
	case "refresh":
		if err := s.ctrl.Refresh(); err != nil {
			return err
		}
		return s.printSlots(ctx)
	case "slots":
		return s.printSlots(ctx)
	case "invalidate":
		return s.invalidate(args)
	case "help":
		s.printHelp()
		return nil
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (s *Session) selectDate(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: select YYYY-MM-DD [force]", ErrUsage)
	}
	date, err := types.ParseDateKey(args[0])
	if err != nil {
		return err
	}

	var opts []controller.SelectOption
	if len(args) == 2 {
		if args[1] != "force" {
			return fmt.Errorf("%w: select YYYY-MM-DD [force]", ErrUsage)
		}
		opts = append(opts, controller.WithForceRefresh())
	}

	if err := s.ctrl.SelectDate(date, opts...); err != nil {
		return err
	}
	s.printState()
	return nil
}

func (s *Session) selectTime(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: time HH:MM", ErrUsage)
	}
	t, err := types.ParseTimeOfDay(args[0])
	if err != nil {
		return err
	}
	if err := s.ctrl.SelectTime(t); err != nil {
		return err
	}

	if at, ok := s.ctrl.SelectedDateTime(); ok {
		fmt.Fprintf(s.out, "selected %s\n", at.Format(time.RFC3339))
	}
	return nil
}

// invalidate сбрасывает слоты даты, без аргумента - всех дат
func (s *Session) invalidate(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: invalidate [YYYY-MM-DD]", ErrUsage)
	}

	var dates []types.DateKey
	if len(args) == 1 {
		date, err := types.ParseDateKey(args[0])
		if err != nil {
			return err
		}
		dates = append(dates, date)
	}

	s.ctrl.Invalidate(dates...)
	s.printState()
	return nil
}

func (s *Session) handleKey(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: key ArrowLeft|ArrowRight|ArrowUp|ArrowDown|PageUp|PageDown|Home", ErrUsage)
	}
	if err := s.ctrl.HandleKey(controller.Key(args[0])); err != nil {
		return err
	}
	s.printGrid()
	return nil
}

// printSlots ждет загрузки слотов выбранной даты и печатает их
func (s *Session) printSlots(ctx context.Context) error {
	view := s.ctrl.View()
	if view.SelectedDate == nil {
		return fmt.Errorf("%w: no date selected", controller.ErrInvalidSelection)
	}
	date := *view.SelectedDate

	waitCtx, cancel := context.WithTimeout(ctx, s.waitTimeout)
	defer cancel()

	entry, err := s.ctrl.WaitSlots(waitCtx, date)
	if err != nil {
		return err
	}
	if entry.LastError != nil && entry.Slots == nil {
		return entry.LastError
	}

	if len(entry.Slots) == 0 {
		fmt.Fprintf(s.out, "%s: no slots\n", date)
		return nil
	}

	fmt.Fprintf(s.out, "%s:\n", date)
	for _, slot := range entry.Slots {
		status := "available"
		if !slot.Available {
			status = slot.Reason
		}
		fmt.Fprintf(s.out, "  %s-%s %s\n", slot.Time, slot.End(), status)
	}
	return nil
}

func (s *Session) printState() {
	view := s.ctrl.View()

	date, t := "-", "-"
	if view.SelectedDate != nil {
		date = view.SelectedDate.String()
	}
	if view.SelectedTime != nil {
		t = view.SelectedTime.String()
	}
	fmt.Fprintf(s.out, "state=%s month=%s date=%s time=%s\n", s.ctrl.State(), view.ViewedMonth, date, t)
}

// printGrid печатает сетку месяца.
// [dd] выбранная дата, *dd сегодня, dd. недоступная дата.
func (s *Session) printGrid() {
	grid := s.ctrl.MonthGrid()
	fmt.Fprintf(s.out, "%s\n", s.ctrl.View().ViewedMonth)

	var b strings.Builder
	for i := 0; i < 7 && i < len(grid); i++ {
		fmt.Fprintf(&b, " %-3s", shortName(grid[i].WeekdayName))
	}
	fmt.Fprintln(s.out, strings.TrimRight(b.String(), " "))

	b.Reset()
	for i, day := range grid {
		b.WriteString(renderCell(day))
		if i%7 == 6 {
			fmt.Fprintln(s.out, strings.TrimRight(b.String(), " "))
			b.Reset()
		}
	}
}

func renderCell(day controller.GridDay) string {
	if !day.InCurrentMonth {
		return "    "
	}

	prefix, suffix := " ", " "
	switch {
	case day.IsSelected:
		prefix, suffix = "[", "]"
	case day.IsToday:
		prefix = "*"
	}
	if !day.Decision.Selectable && !day.IsSelected {
		suffix = "."
	}
	return fmt.Sprintf("%s%2d%s", prefix, day.Date.Day(), suffix)
}

// shortName первые две буквы названия дня недели
func shortName(name string) string {
	if utf8.RuneCountInString(name) <= 2 {
		return name
	}
	return string([]rune(name)[:2])
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `commands:
  show                      month grid
  next | prev               change month
  select YYYY-MM-DD [force] select date
  time HH:MM                select time
  key NAME                  ArrowLeft ArrowRight ArrowUp ArrowDown PageUp PageDown Home
  slots                     slots of the selected date
  refresh                   reload slots of the selected date
  invalidate [YYYY-MM-DD]   drop loaded slots of a date or of all dates
  clear                     drop selection
  state                     current state
  quit
`)
}
