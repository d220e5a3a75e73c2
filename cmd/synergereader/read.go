package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/synerge/synergereader/client"
	"github.com/synerge/synergereader/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type ReadCommand struct {
	ServerURL    string `help:"The URL of the SynergeReader server." env:"SYNERGEREADER_URL" default:"http://localhost:9020"`
	File         string `help:"A document to upload and read before asking questions." default:""`
	SelectedText string `help:"The initial selected passage." default:""`
	LogLevel     string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ReadCommand) Run(ctx context.Context) (err error) {
	sc := client.New(c.ServerURL)

	var documentText string
	if c.File != "" {
		documentText, err = extractText(ctx, c.File)
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		if _, err = sc.Upload(ctx, c.File, strings.NewReader(documentText)); err != nil {
			return fmt.Errorf("failed to upload document: %w", err)
		}
	}

	toServer := make(chan models.AskRequest)
	fromServer := make(chan []exchange)
	errors := make(chan error)
	defer close(toServer)
	defer close(fromServer)
	defer close(errors)

	go func() {
		var transcript []exchange
		for req := range toServer {
			transcript = append(transcript, exchange{role: roleUser, content: req.Question})
			resp, err := sc.Ask(ctx, req)
			if err != nil {
				errors <- err
				return
			}
			answer := resp.Answer
			if resp.HistoryError != "" {
				answer += "\n\n(warning: " + resp.HistoryError + ")"
			}
			transcript = append(transcript, exchange{role: roleAssistant, content: answer})
			fromServer <- transcript
		}
	}()

	p := tea.NewProgram(newReadModel(ctx, documentText, c.SelectedText, toServer, fromServer, errors))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

type role int

const (
	roleUser role = iota
	roleAssistant
	roleSystem
)

type exchange struct {
	role    role
	content string
}

// Dracula color scheme.
var (
	readBackground = lipgloss.Color("#282a36")
	readGreen      = lipgloss.Color("#50fa7b")
	readCyan       = lipgloss.Color("#8be9fd")
	readPink       = lipgloss.Color("#ff79c6")
	readComment    = lipgloss.Color("#6272a4")
)

var documentStyle = lipgloss.NewStyle().Foreground(readComment).Padding(1)

var roleToStyle = map[role]lipgloss.Style{
	roleSystem:    lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).MaxWidth(90).Background(readBackground).Foreground(readGreen),
	roleUser:      lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(readBackground).Foreground(readPink),
	roleAssistant: lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(readBackground).Foreground(readCyan),
}

var roleToIcon = map[role]string{
	roleSystem:    "📖",
	roleUser:      "🥷",
	roleAssistant: "✨",
}

func formatExchange(e exchange) string {
	style, ok := roleToStyle[e.role]
	if !ok {
		return e.content
	}
	icon, ok := roleToIcon[e.role]
	if !ok {
		icon = "🤷"
	}
	wrapped := wordwrap.String(strings.TrimSpace(icon+" "+e.content), 80)
	return style.Render(wrapped)
}

type readModel struct {
	viewport viewport.Model
	textarea textarea.Model
	err      error
	ctx      context.Context

	documentText string
	selectedText string

	// Server interactions.
	toServer   chan models.AskRequest
	fromServer chan []exchange
	errors     chan error
}

func newReadModel(ctx context.Context, documentText, selectedText string, toServer chan models.AskRequest, fromServer chan []exchange, errors chan error) readModel {
	ta := textarea.New()
	ta.Placeholder = "Ask about the selection, or /select <passage>..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 280

	ta.SetHeight(3)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	if documentText != "" {
		vp.SetContent(documentStyle.Render(wordwrap.String(documentText, 80)))
	} else {
		vp.SetContent(formatExchange(exchange{
			role:    roleSystem,
			content: "Upload a document with `synergereader upload`, set a passage with /select, then ask away.",
		}))
	}

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return readModel{
		ctx:          ctx,
		textarea:     ta,
		viewport:     vp,
		err:          nil,
		documentText: documentText,
		selectedText: selectedText,
		toServer:     toServer,
		fromServer:   fromServer,
		errors:       errors,
	}
}

func (m readModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.subscribeToFromServer(),
		m.subscribeToErrors(),
	)
}

func (m readModel) subscribeToFromServer() tea.Cmd {
	return func() tea.Msg {
		select {
		case x := <-m.fromServer:
			return x
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m readModel) subscribeToErrors() tea.Cmd {
	return func() tea.Msg {
		select {
		case x := <-m.errors:
			return x
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m readModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		m.err = msg
		return m, m.subscribeToErrors()
	case []exchange:
		var sb strings.Builder
		for _, e := range msg {
			sb.WriteString(formatExchange(e))
			sb.WriteString("\n")
		}
		m.viewport.SetContent(sb.String())
		m.viewport.GotoBottom()
		return m, m.subscribeToFromServer()
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			v := m.textarea.Value()

			if v == "" {
				// Don't send empty questions.
				return m, nil
			}

			if selection, ok := strings.CutPrefix(v, "/select "); ok {
				m.selectedText = strings.TrimSpace(selection)
				m.textarea.Reset()
				return m, nil
			}

			m.textarea.Reset()
			m.toServer <- models.AskRequest{
				SelectedText: m.selectedText,
				Question:     v,
			}
			return m, nil
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m readModel) View() string {
	status := ""
	if m.selectedText != "" {
		status = lipgloss.NewStyle().Foreground(readComment).Render(
			wordwrap.String("selected: "+m.selectedText, 80)) + "\n"
	}
	if m.err != nil {
		status += lipgloss.NewStyle().Foreground(readPink).Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}
	return fmt.Sprintf("%s\n%s%s",
		m.viewport.View(),
		status,
		m.textarea.View(),
	) + "\n\n"
}
