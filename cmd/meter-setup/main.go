package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const DEFAULT_API_URL = "http://localhost:8000"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	onlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type step int

const (
	stepEnteringURL step = iota
	stepLoadingMeters
	stepListingMeters
	stepEnteringMeterID
	stepEnteringDescription
	stepCreatingMeter
)

type meter struct {
	MeterID    string  `json:"meter_id"`
	Online     bool    `json:"online"`
	LastUpdate *string `json:"last_update"`
}

type model struct {
	step         step
	apiURL       string
	meters       []meter
	newMeterID   string
	newMeterDesc string
	currentInput string
	message      string
	quitting     bool
}

type metersLoadedMsg []meter
type meterCreatedMsg struct{ id string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	return model{
		step:         stepEnteringURL,
		currentInput: DEFAULT_API_URL,
		meters:       []meter{},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func loadMeters(apiURL string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		resp, err := client.Get(apiURL + "/api/meters")
		if err != nil {
			return errMsg{fmt.Errorf("API not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return errMsg{fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))}
		}

		var result struct {
			Meters []meter `json:"meters"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("failed to decode meter list: %w", err)}
		}

		return metersLoadedMsg(result.Meters)
	}
}

func createMeter(apiURL, id, description string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"id":          id,
			"description": description,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", apiURL+"/api/meters", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("failed to create meter: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			var result struct {
				Error string `json:"error"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.Error != "" {
				return errMsg{fmt.Errorf("%s", result.Error)}
			}
			return errMsg{fmt.Errorf("API returned %d", resp.StatusCode)}
		}

		return meterCreatedMsg{id: id}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.step == stepListingMeters {
				m.quitting = true
				return m, tea.Quit
			}
			if m.step == stepEnteringURL || m.step == stepEnteringMeterID || m.step == stepEnteringDescription {
				m.currentInput += "q"
			}

		case "n":
			if m.step == stepListingMeters {
				m.currentInput = ""
				m.message = ""
				m.step = stepEnteringMeterID
			} else if m.step == stepEnteringURL || m.step == stepEnteringMeterID || m.step == stepEnteringDescription {
				m.currentInput += "n"
			}

		case "r":
			if m.step == stepListingMeters {
				m.message = "Refreshing..."
				m.step = stepLoadingMeters
				return m, loadMeters(m.apiURL)
			}
			if m.step == stepEnteringURL || m.step == stepEnteringMeterID || m.step == stepEnteringDescription {
				m.currentInput += "r"
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "enter":
			switch m.step {
			case stepEnteringURL:
				if m.currentInput != "" {
					m.apiURL = strings.TrimRight(m.currentInput, "/")
					m.currentInput = ""
					m.step = stepLoadingMeters
					m.message = "Loading meters..."
					return m, loadMeters(m.apiURL)
				}

			case stepEnteringMeterID:
				if m.currentInput != "" {
					m.newMeterID = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringDescription
				}

			case stepEnteringDescription:
				m.newMeterDesc = m.currentInput
				m.currentInput = ""
				m.step = stepCreatingMeter
				m.message = fmt.Sprintf("Registering %s...", m.newMeterID)
				return m, createMeter(m.apiURL, m.newMeterID, m.newMeterDesc)
			}

		default:
			if m.step == stepEnteringURL || m.step == stepEnteringMeterID || m.step == stepEnteringDescription {
				if len(msg.String()) == 1 {
					m.currentInput += msg.String()
				}
			}
		}

	case metersLoadedMsg:
		m.meters = []meter(msg)
		m.step = stepListingMeters
		if m.message == "" || strings.HasPrefix(m.message, "Loading") || strings.HasPrefix(m.message, "Refreshing") {
			m.message = ""
		}

	case meterCreatedMsg:
		m.message = successStyle.Render(fmt.Sprintf("✓ Meter %s registered", msg.id))
		m.step = stepLoadingMeters
		return m, loadMeters(m.apiURL)

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.Error())
		switch m.step {
		case stepLoadingMeters:
			m.step = stepEnteringURL
			m.currentInput = m.apiURL
		case stepCreatingMeter:
			m.step = stepListingMeters
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Energy Monitor — Meter Setup"))
	b.WriteString("\n\n")

	switch m.step {
	case stepEnteringURL:
		b.WriteString(promptStyle.Render("API base URL:"))
		b.WriteString("\n")
		b.WriteString(inputStyle.Render("> " + m.currentInput + "▌"))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: connect • ctrl+c: quit"))

	case stepLoadingMeters, stepCreatingMeter:
		b.WriteString(normalStyle.Render(m.message))

	case stepListingMeters:
		b.WriteString(promptStyle.Render(fmt.Sprintf("Meters @ %s", m.apiURL)))
		b.WriteString("\n\n")
		if len(m.meters) == 0 {
			b.WriteString(normalStyle.Render("(no meters registered)"))
			b.WriteString("\n")
		}
		for _, mt := range m.meters {
			state := offlineStyle.Render("offline")
			lastUpdate := "never"
			if mt.Online {
				state = onlineStyle.Render("online ")
			}
			if mt.LastUpdate != nil {
				lastUpdate = *mt.LastUpdate
			}
			b.WriteString(normalStyle.Render(fmt.Sprintf("%-14s %s  last update: %s", mt.MeterID, state, lastUpdate)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.message != "" {
			b.WriteString(m.message)
			b.WriteString("\n\n")
		}
		b.WriteString(helpStyle.Render("n: new meter • r: refresh • q: quit"))

	case stepEnteringMeterID:
		b.WriteString(promptStyle.Render("New meter id:"))
		b.WriteString("\n")
		b.WriteString(inputStyle.Render("> " + m.currentInput + "▌"))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: next • ctrl+c: quit"))

	case stepEnteringDescription:
		b.WriteString(promptStyle.Render(fmt.Sprintf("Description for %s:", m.newMeterID)))
		b.WriteString("\n")
		b.WriteString(inputStyle.Render("> " + m.currentInput + "▌"))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: register • ctrl+c: quit"))
	}

	b.WriteString("\n")
	return b.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
