package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jschwehn/cableampacity"
	"github.com/jschwehn/cableampacity/internal/materials"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	borderStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(lipgloss.Color("62"))
)

// step identifies a page of the form, mirroring the teacher's
// integer-state Update/View dispatch.
const (
	stepDimensions = iota
	stepConductorMaterial
	stepInsulationMaterial
	stepInstallation
	stepResults
)

// fieldIndex names the textinput.Model slots collected on stepDimensions.
const (
	fieldAreaMM2 = iota
	fieldDiameterMM
	fieldPhaseSpacingMM
	fieldInsulationThicknessMM
	fieldJacketThicknessMM
	fieldU0V
	fieldFrequencyHz
	fieldTmaxC
	fieldLoadFactor
	fieldDepthM
	fieldRhoSoil
	fieldTambC
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldAreaMM2:               "conductor area (mm^2)",
	fieldDiameterMM:            "conductor diameter (mm)",
	fieldPhaseSpacingMM:        "phase spacing (mm)",
	fieldInsulationThicknessMM: "insulation thickness (mm)",
	fieldJacketThicknessMM:     "jacket thickness (mm)",
	fieldU0V:                   "phase-to-ground voltage (V)",
	fieldFrequencyHz:           "frequency (Hz)",
	fieldTmaxC:                 "max conductor temperature (C)",
	fieldLoadFactor:            "load factor (0,1]",
	fieldDepthM:                "burial depth (m)",
	fieldRhoSoil:               "soil thermal resistivity (K.m/W)",
	fieldTambC:                 "ambient temperature (C)",
}

var fieldDefaults = [fieldCount]string{
	fieldAreaMM2:               "400",
	fieldDiameterMM:            "23.0",
	fieldPhaseSpacingMM:        "80",
	fieldInsulationThicknessMM: "5.5",
	fieldJacketThicknessMM:     "3.0",
	fieldU0V:                   "64000",
	fieldFrequencyHz:           "50",
	fieldTmaxC:                 "90",
	fieldLoadFactor:            "1.0",
	fieldDepthM:                "1.0",
	fieldRhoSoil:               "1.0",
	fieldTambC:                 "25",
}

// item is a single selectable list entry, grounded on the teacher's
// main_tui.go item/itemDelegate rendering.
type item struct {
	title, desc string
	value       string
}

func (i item) FilterValue() string { return i.title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                        { return 2 }
func (d itemDelegate) Spacing() int                       { return 1 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}
	str := fmt.Sprintf("%s\n  %s", i.title, i.desc)
	if index == m.Index() {
		str = valueStyle.Render("> " + i.title) + "\n  " + labelStyle.Render(i.desc)
	}
	fmt.Fprint(w, str)
}

func conductorMaterialItems() []list.Item {
	return []list.Item{
		item{title: "copper", desc: "higher conductivity, smaller cross-section", value: string(materials.Copper)},
		item{title: "aluminum", desc: "lighter, lower conductivity", value: string(materials.Aluminum)},
	}
}

func insulationMaterialItems() []list.Item {
	return []list.Item{
		item{title: "XLPE", desc: "cross-linked polyethylene, 90C rated", value: string(materials.XLPE)},
		item{title: "EPR", desc: "ethylene propylene rubber, 90C rated", value: string(materials.EPR)},
		item{title: "paper-oil", desc: "impregnated paper, 85C rated", value: string(materials.PaperOil)},
	}
}

func installationItems() []list.Item {
	return []list.Item{
		item{title: "direct buried", desc: "single cable in native soil, no neighbours", value: "direct_buried"},
		item{title: "conduit", desc: "single duct buried in native soil", value: "conduit"},
	}
}

// model is the Bubble Tea state machine driving the scenario form and
// results view.
type model struct {
	step   int
	inputs []textinput.Model
	active int

	conductorList    list.Model
	insulationList   list.Model
	installationList list.Model

	installationType string
	err              error

	report string
	copied bool
}

func initialModel() model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fieldDefaults[i]
		ti.CharLimit = 32
		ti.Width = 20
		inputs[i] = ti
	}
	inputs[0].Focus()

	newList := func(items []list.Item, title string) list.Model {
		l := list.New(items, itemDelegate{}, 40, 8)
		l.Title = title
		l.SetShowStatusBar(false)
		l.SetShowHelp(false)
		return l
	}

	return model{
		step:             stepDimensions,
		inputs:           inputs,
		conductorList:    newList(conductorMaterialItems(), "conductor material"),
		insulationList:   newList(insulationMaterialItems(), "insulation material"),
		installationList: newList(installationItems(), "installation"),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

		switch m.step {
		case stepDimensions:
			return m.updateDimensions(msg)
		case stepConductorMaterial:
			return m.updateSelection(msg, &m.conductorList, stepInsulationMaterial)
		case stepInsulationMaterial:
			return m.updateSelection(msg, &m.insulationList, stepInstallation)
		case stepInstallation:
			return m.updateInstallation(msg)
		case stepResults:
			if msg.String() == "y" {
				_ = clipboard.WriteAll(m.report)
				m.copied = true
			}
			if msg.String() == "q" {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) updateDimensions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.inputs[m.active].Blur()
		m.active = (m.active + 1) % fieldCount
		m.inputs[m.active].Focus()
		return m, nil
	case "shift+tab", "up":
		m.inputs[m.active].Blur()
		m.active = (m.active - 1 + fieldCount) % fieldCount
		m.inputs[m.active].Focus()
		return m, nil
	case "enter":
		m.step = stepConductorMaterial
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
	return m, cmd
}

func (m model) updateSelection(msg tea.KeyMsg, l *list.Model, next int) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.step = next
		return m, nil
	}
	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

func (m model) updateInstallation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		selected, ok := m.installationList.SelectedItem().(item)
		if !ok {
			m.err = fmt.Errorf("no installation selected")
			return m, nil
		}
		m.installationType = selected.value
		m.step = stepResults
		m.report, m.err = m.solve()
		return m, nil
	}
	var cmd tea.Cmd
	m.installationList, cmd = m.installationList.Update(msg)
	return m, cmd
}

func (m model) field(i int) (float64, error) {
	raw := strings.TrimSpace(m.inputs[i].Value())
	if raw == "" {
		raw = fieldDefaults[i]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", fieldLabels[i], err)
	}
	return v, nil
}

// solve builds a CableSpec and Installation from the collected form
// values and runs the engine, returning the formatted report.
func (m model) solve() (string, error) {
	var errs []error
	get := func(i int) float64 {
		v, err := m.field(i)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	conductorMaterial, _ := m.conductorList.SelectedItem().(item)
	insulationMaterial, _ := m.insulationList.SelectedItem().(item)

	cable := ampacity.CableSpec{
		Conductor: ampacity.Conductor{
			Material:       materials.ConductorMaterial(conductorMaterial.value),
			AreaMM2:        get(fieldAreaMM2),
			DiameterMM:     get(fieldDiameterMM),
			Stranding:      materials.StrandedRound,
			PhaseSpacingMM: get(fieldPhaseSpacingMM),
		},
		Insulation: ampacity.Insulation{
			Material:    materials.InsulationMaterial(insulationMaterial.value),
			ThicknessMM: get(fieldInsulationThicknessMM),
		},
		Jacket: ampacity.Jacket{
			Material:    materials.PVC,
			ThicknessMM: get(fieldJacketThicknessMM),
		},
		Operating: ampacity.OperatingConditions{
			U0V:         get(fieldU0V),
			FrequencyHz: get(fieldFrequencyHz),
			TmaxC:       get(fieldTmaxC),
			LoadFactor:  get(fieldLoadFactor),
		},
	}

	depthM := get(fieldDepthM)
	rhoSoil := get(fieldRhoSoil)
	tambC := get(fieldTambC)

	if len(errs) > 0 {
		return "", errs[0]
	}

	var inst ampacity.Installation
	switch m.installationType {
	case "conduit":
		inst = ampacity.Conduit{
			DepthM:          depthM,
			RhoSoil:         rhoSoil,
			TambC:           tambC,
			ConduitIDMM:     cable.Conductor.DiameterMM + 20,
			ConduitODMM:     cable.Conductor.DiameterMM + 30,
			ConduitMaterial: materials.ConduitPVC,
		}
	default:
		inst = ampacity.DirectBuried{DepthM: depthM, RhoSoil: rhoSoil, TambC: tambC}
	}

	result, solveErr := ampacity.Solve(context.Background(), ampacity.Request{Cable: cable, Installation: inst})
	return formatReport("cable", result, solveErr), solveErr
}

func (m model) View() string {
	switch m.step {
	case stepDimensions:
		return m.dimensionsView()
	case stepConductorMaterial:
		return titleStyle.Render("cablecalc") + "\n" + m.conductorList.View() + helpStyle.Render("\nenter to continue, esc to quit")
	case stepInsulationMaterial:
		return titleStyle.Render("cablecalc") + "\n" + m.insulationList.View() + helpStyle.Render("\nenter to continue, esc to quit")
	case stepInstallation:
		return titleStyle.Render("cablecalc") + "\n" + m.installationList.View() + helpStyle.Render("\nenter to solve, esc to quit")
	case stepResults:
		return m.resultsView()
	}
	return ""
}

func (m model) dimensionsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("cablecalc — cable construction and operating point"))
	b.WriteString("\n")
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(": ")
		b.WriteString(borderStyle.Render(m.inputs[i].View()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab to move, enter to continue, esc to quit"))
	return b.String()
}

func (m model) resultsView() string {
	if m.err != nil {
		return titleStyle.Render("cablecalc — result") + "\n" + errorStyle.Render(m.err.Error()) + helpStyle.Render("\nq to quit")
	}
	box := resultBoxStyle.Render(m.report)
	status := successStyle.Render("design feasible")
	if strings.Contains(m.report, "FAIL") {
		status = warningStyle.Render("design does not meet target")
	}
	footer := "\npress y to copy this report to the clipboard, q to quit"
	if m.copied {
		footer = successStyle.Render("\ncopied to clipboard") + " — press q to quit"
	}
	return titleStyle.Render("cablecalc — result") + "\n" + status + "\n" + box + helpStyle.Render(footer)
}
