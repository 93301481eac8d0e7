// Package tui implements the interactive terminal form for converting an
// inventory file. It walks the operator through the same choices as the web
// form: input file, device type, location and company, then writes the
// import file.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Converter is the part of core.Service the form needs.
type Converter interface {
	ListDevices() []core.DeviceDefinition
	ConvertPath(ctx context.Context, path string, req core.ConversionRequest) (*core.ConversionResult, error)
}

// Step identifies the screen the form is on.
type Step int

const (
	StepFile Step = iota
	StepDevice
	StepLocation
	StepCustomLocation
	StepConfirmLocation
	StepCompany
	StepConverting
	StepDone
)

// customChoice is the last entry of the location list.
const customChoice = "Custom location..."

// maxShownWarnings caps the skipped-row lines on the result screen.
const maxShownWarnings = 10

// conversionDoneMsg carries the outcome of the background conversion.
type conversionDoneMsg struct {
	result *core.ConversionResult
	path   string
	err    error
}

// Model is the bubbletea model for the conversion form.
type Model struct {
	ctx       context.Context
	conv      Converter
	outDir    string
	devices   []core.DeviceDefinition
	locations []string

	step           Step
	fileInput      textinput.Model
	customInput    textinput.Model
	companyInput   textinput.Model
	deviceCursor   int
	locationCursor int

	req      core.ConversionRequest
	filePath string
	err      error

	result   *core.ConversionResult
	outPath  string
	quitting bool
}

// NewModel creates the form. Output files are written into outDir.
func NewModel(ctx context.Context, conv Converter, outDir string) Model {
	fileInput := textinput.New()
	fileInput.Placeholder = "inventory.xlsx"
	fileInput.Prompt = "File: "
	fileInput.Focus()

	customInput := textinput.New()
	customInput.Placeholder = "e.g. Central Office 3"
	customInput.Prompt = "Location: "

	companyInput := textinput.New()
	companyInput.Placeholder = "Customer name"
	companyInput.Prompt = "Company: "

	return Model{
		ctx:          ctx,
		conv:         conv,
		outDir:       outDir,
		devices:      conv.ListDevices(),
		locations:    append(core.PresetLocations(), customChoice),
		step:         StepFile,
		fileInput:    fileInput,
		customInput:  customInput,
		companyInput: companyInput,
	}
}

// Run starts the form on the given terminal streams and returns the final
// model once the operator quits.
func Run(ctx context.Context, conv Converter, outDir string, in io.Reader, out io.Writer) (Model, error) {
	p := tea.NewProgram(NewModel(ctx, conv, outDir),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return Model{}, fmt.Errorf("run form: %w", err)
	}
	return final.(Model), nil
}

// Step returns the current screen.
func (m Model) Step() Step { return m.step }

// Request returns the selections made so far.
func (m Model) Request() core.ConversionRequest { return m.req }

// Result returns the conversion outcome: the result and output path on
// success, or the error that stopped it. All are zero until a conversion ran.
func (m Model) Result() (*core.ConversionResult, string, error) {
	if m.step != StepDone {
		return nil, "", nil
	}
	return m.result, m.outPath, m.err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case conversionDoneMsg:
		m.step = StepDone
		m.result = msg.result
		m.outPath = msg.path
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.step {
		case StepFile:
			return m.updateFile(msg)
		case StepDevice:
			return m.updateDevice(msg)
		case StepLocation:
			return m.updateLocation(msg)
		case StepCustomLocation:
			return m.updateCustomLocation(msg)
		case StepConfirmLocation:
			return m.updateConfirm(msg)
		case StepCompany:
			return m.updateCompany(msg)
		case StepConverting:
			return m, nil
		case StepDone:
			return m.updateDone(msg)
		}
	}

	return m, nil
}

func (m Model) updateFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		path := strings.TrimSpace(m.fileInput.Value())
		if path == "" {
			m.err = fmt.Errorf("enter the path of the inventory file")
			return m, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			m.err = fmt.Errorf("cannot open %s: %w", path, err)
			return m, nil
		}
		if info.IsDir() {
			m.err = fmt.Errorf("%s is a directory", path)
			return m, nil
		}
		m.err = nil
		m.filePath = path
		m.fileInput.Blur()
		m.step = StepDevice
		return m, nil
	}

	var cmd tea.Cmd
	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

func (m Model) updateDevice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.deviceCursor > 0 {
			m.deviceCursor--
		}
	case "down", "j":
		if m.deviceCursor < len(m.devices)-1 {
			m.deviceCursor++
		}
	case "esc":
		m.step = StepFile
		return m, m.fileInput.Focus()
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if len(m.devices) == 0 {
			m.err = fmt.Errorf("no device types are registered")
			return m, nil
		}
		m.err = nil
		m.req.DeviceID = m.devices[m.deviceCursor].ID
		m.step = StepLocation
	}
	return m, nil
}

func (m Model) updateLocation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.locationCursor > 0 {
			m.locationCursor--
		}
	case "down", "j":
		if m.locationCursor < len(m.locations)-1 {
			m.locationCursor++
		}
	case "esc":
		m.step = StepDevice
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		choice := m.locations[m.locationCursor]
		if choice == customChoice {
			m.step = StepCustomLocation
			return m, m.customInput.Focus()
		}
		m.req.Location = choice
		m.req.LocationConfirmed = false
		m.step = StepCompany
		return m, m.companyInput.Focus()
	}
	return m, nil
}

func (m Model) updateCustomLocation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.err = nil
		m.customInput.Blur()
		m.step = StepLocation
		return m, nil
	case tea.KeyEnter:
		value := m.customInput.Value()
		if strings.TrimSpace(value) == "" {
			m.err = fmt.Errorf("enter a location name")
			return m, nil
		}
		m.err = nil
		m.req.Location = value
		m.req.LocationConfirmed = false
		m.customInput.Blur()
		m.step = StepConfirmLocation
		return m, nil
	}

	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.req.LocationConfirmed = true
		m.step = StepCompany
		return m, m.companyInput.Focus()
	case "n", "N", "esc":
		m.step = StepCustomLocation
		return m, m.customInput.Focus()
	}
	return m, nil
}

func (m Model) updateCompany(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.err = nil
		m.companyInput.Blur()
		m.step = StepLocation
		return m, nil
	case tea.KeyEnter:
		m.req.Company = strings.TrimSpace(m.companyInput.Value())
		if err := m.req.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.companyInput.Blur()
		m.step = StepConverting
		return m, m.convertCmd()
	}

	var cmd tea.Cmd
	m.companyInput, cmd = m.companyInput.Update(msg)
	return m, cmd
}

func (m Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		next := NewModel(m.ctx, m.conv, m.outDir)
		return next, next.Init()
	case "q", "enter", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// convertCmd runs the conversion and writes the output file off the UI loop.
func (m Model) convertCmd() tea.Cmd {
	ctx, conv, path, outDir, req := m.ctx, m.conv, m.filePath, m.outDir, m.req
	return func() tea.Msg {
		result, err := conv.ConvertPath(ctx, path, req)
		if err != nil {
			return conversionDoneMsg{err: err}
		}
		out, err := result.WriteFile(outDir)
		if err != nil {
			return conversionDoneMsg{result: result, err: err}
		}
		return conversionDoneMsg{result: result, path: out}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Adtran inventory converter"))
	b.WriteString("\n")

	switch m.step {
	case StepFile:
		b.WriteString(stepStyle.Render("1. Inventory file (CSV or XLSX)") + "\n\n")
		b.WriteString(m.fileInput.View() + "\n")
	case StepDevice:
		b.WriteString(stepStyle.Render("2. Device type") + "\n\n")
		b.WriteString(m.deviceView())
	case StepLocation:
		b.WriteString(stepStyle.Render("3. Location") + "\n\n")
		for i, loc := range m.locations {
			b.WriteString(renderItem(loc, i == m.locationCursor) + "\n")
		}
	case StepCustomLocation:
		b.WriteString(stepStyle.Render("3. Custom location") + "\n\n")
		b.WriteString(m.customInput.View() + "\n")
	case StepConfirmLocation:
		b.WriteString(stepStyle.Render("3. Confirm location") + "\n\n")
		fmt.Fprintf(&b, "Use %s as the location? (y/n)\n", labelStyle.Render(fmt.Sprintf("%q", m.req.Location)))
	case StepCompany:
		b.WriteString(stepStyle.Render("4. Company") + "\n\n")
		b.WriteString(m.companyInput.View() + "\n")
	case StepConverting:
		fmt.Fprintf(&b, "Converting %s for %s...\n", m.filePath, m.req.DeviceID)
	case StepDone:
		b.WriteString(m.resultView())
	}

	if m.err != nil && m.step != StepDone {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) deviceView() string {
	var b strings.Builder
	for i, d := range m.devices {
		b.WriteString(renderItem(fmt.Sprintf("%-10s %s", d.ID, d.Profile), i == m.deviceCursor) + "\n")
	}
	if m.deviceCursor < len(m.devices) {
		d := m.devices[m.deviceCursor]
		preview := labelStyle.Render("Template: ") + d.NumbersTemplate + "\n" +
			labelStyle.Render("Example:  ") + core.PreviewNumbers(d)
		b.WriteString(previewStyle.Render(preview) + "\n")
	}
	return b.String()
}

func (m Model) resultView() string {
	var b strings.Builder
	if m.err != nil {
		msg := core.MapError(m.err)
		b.WriteString(errorStyle.Render("Conversion failed: "+msg.Message) + "\n")
		if msg.Action != "" {
			b.WriteString(msg.Action + "\n")
		}
		return b.String()
	}

	b.WriteString(successStyle.Render(fmt.Sprintf("Wrote %d records to %s", len(m.result.Records), m.outPath)) + "\n")
	fmt.Fprintf(&b, "Columns: serial=%q mac=%q fsan=%q\n",
		m.result.Columns.Serial, m.result.Columns.MAC, m.result.Columns.FSAN)
	if skipped := m.result.Skipped(); skipped > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%d rows skipped", skipped)) + "\n")
		for i, w := range m.result.Warnings {
			if i == maxShownWarnings {
				fmt.Fprintf(&b, "  ... and %d more\n", len(m.result.Warnings)-maxShownWarnings)
				break
			}
			b.WriteString("  " + w.String() + "\n")
		}
	}
	return b.String()
}

func (m Model) help() string {
	switch m.step {
	case StepFile:
		return "enter: next • esc: quit"
	case StepDevice, StepLocation:
		return "↑/↓: move • enter: select • esc: back • q: quit"
	case StepConfirmLocation:
		return "y: confirm • n: edit"
	case StepConverting:
		return "ctrl+c: quit"
	case StepDone:
		return "r: convert another • enter/q: quit"
	default:
		return "enter: next • esc: back"
	}
}

func renderItem(label string, selected bool) string {
	if selected {
		return selectedItemStyle.Render("> " + label)
	}
	return itemStyle.Render("  " + label)
}
