package main

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	ui "github.com/gizak/termui"

	"github.com/avahowell/passgen/strength"
)

type passgenUI struct {
	a                 *app
	length            int
	lastInputTime     int64
	password          *ui.Par
	gauge             *ui.Gauge
	flash             *ui.Par
	saveDialog        *ui.Par
	displayFlash      bool
	displaySaveDialog bool
	saveTitle         string
}

func newPassgenUI(a *app, length int) (*passgenUI, error) {
	// password display
	password := ui.NewPar("")
	password.Height = 3
	password.BorderLabel = "Contraseña"
	password.TextFgColor = ui.ColorYellow

	// strength gauge
	gauge := ui.NewGauge()
	gauge.Height = 3
	gauge.BorderLabel = "Fortaleza"

	// save dialog
	saveDialog := ui.NewPar("")
	saveDialog.BorderLabel = "Guardar"
	saveDialog.Float = ui.AlignCenter
	saveDialog.Height = 3
	saveDialog.Width = 50

	// flash message
	flash := ui.NewPar("")
	flash.Height = 1
	flash.Width = 60
	flash.Border = false
	flash.Float = ui.AlignBottom

	m := &passgenUI{
		a:             a,
		length:        length,
		lastInputTime: time.Now().Unix(),
		password:      password,
		gauge:         gauge,
		flash:         flash,
		saveDialog:    saveDialog,
	}
	if err := m.regenerate(); err != nil {
		return nil, err
	}
	return m, nil
}

// regenerate replaces the displayed password and its strength.
func (m *passgenUI) regenerate() error {
	passwords, err := m.a.generate(1, m.length)
	if err != nil {
		return err
	}
	pw := passwords[0]
	s := strength.Score(pw)

	m.password.Text = pw
	m.password.BorderLabel = fmt.Sprintf("Contraseña (%d)", m.length)
	m.gauge.Percent = int(math.Floor(s*100 + 1e-9))
	m.gauge.BorderLabel = "Fortaleza: " + strength.Label(s)
	switch {
	case s >= 0.9:
		m.gauge.BarColor = ui.ColorGreen
	case s >= 0.5:
		m.gauge.BarColor = ui.ColorYellow
	default:
		m.gauge.BarColor = ui.ColorRed
	}
	return nil
}

func (m *passgenUI) showFlash(text string) {
	m.flash.Text = text
	m.displayFlash = true
}

func (m *passgenUI) saveDialogInputHandler(inputKey string) error {
	switch inputKey {
	case "<escape>":
		m.displaySaveDialog = false
		m.saveTitle = ""
	case "C-8":
		if len(m.saveTitle) > 0 {
			m.saveTitle = m.saveTitle[:len(m.saveTitle)-1]
		}
	case "<space>":
		m.saveTitle += " "
	case "<enter>":
		if _, err := m.a.files.Save(m.saveTitle, m.password.Text); err != nil {
			return err
		}
		m.showFlash(fmt.Sprintf("Contraseña guardada en '%s'.", m.saveTitle+".txt"))
		m.displaySaveDialog = false
		m.saveTitle = ""
	default:
		m.saveTitle += inputKey
	}
	m.saveDialog.Text = "Título: " + m.saveTitle
	return nil
}

// inputHandler handles a key in the main view. It reports whether the
// interface should exit.
func (m *passgenUI) inputHandler(inputKey string) (bool, error) {
	switch inputKey {
	case "q", "C-c":
		return true, nil
	case "g", "<enter>":
		return false, m.regenerate()
	case "<up>", "k", "+":
		m.length++
		return false, m.regenerate()
	case "<down>", "j", "-":
		if m.length > m.a.gen.MinLength() {
			m.length--
		}
		return false, m.regenerate()
	case "c":
		if err := m.a.copy(m.password.Text); err != nil {
			return false, err
		}
		m.showFlash(fmt.Sprintf("copiada al portapapeles, se borrará en %v", m.a.clip.Timeout()))
	case "s":
		m.saveTitle = ""
		m.saveDialog.Text = "Título: "
		m.displaySaveDialog = true
	}
	return false, nil
}

func (m *passgenUI) render() {
	ui.Clear()
	ui.Render(ui.Body)
	if m.displayFlash {
		m.displayFlash = false
		ui.Render(m.flash)
	}
	if m.displaySaveDialog {
		ui.Render(m.saveDialog)
	}
}

func (m *passgenUI) run() {
	buttons := []string{
		"[ G ](fg-black,bg-white) Generar",
		"[ +/- ](fg-black,bg-white) Longitud",
		"[ C ](fg-black,bg-white) Copiar",
		"[ S ](fg-black,bg-white) Guardar",
		"[ Q ](fg-black,bg-white) Salir",
	}
	var cols []*ui.Row
	for _, label := range buttons {
		button := ui.NewPar(label)
		button.Height = 1
		button.Border = false
		cols = append(cols, ui.NewCol(2, 0, button))
	}

	ui.Body.AddRows(
		ui.NewRow(ui.NewCol(12, 0, m.password)),
		ui.NewRow(ui.NewCol(12, 0, m.gauge)),
		ui.NewRow(cols...),
	)

	ui.Handle("/sys/kbd", func(e ui.Event) {
		atomic.StoreInt64(&m.lastInputTime, time.Now().Unix())
		inputKey := e.Data.(ui.EvtKbd).KeyStr

		var err error
		if m.displaySaveDialog {
			err = m.saveDialogInputHandler(inputKey)
		} else {
			var quit bool
			quit, err = m.inputHandler(inputKey)
			if quit {
				ui.StopLoop()
				return
			}
		}
		if err != nil {
			m.showFlash(err.Error())
		}
		m.render()
	})
	ui.Handle("/sys/wnd/resize", func(ui.Event) {
		if ui.TermWidth() > 20 {
			ui.Body.Width = ui.TermWidth()
		}
		ui.Body.Align()
		m.render()
	})

	ui.Body.Align()
	m.render()
	ui.Loop()
}

// runUI shows the full-screen interface until the user quits or nothing is
// typed for `timeout`.
func runUI(a *app, timeout time.Duration) error {
	m, err := newPassgenUI(a, a.length)
	if err != nil {
		return err
	}

	if err := ui.Init(); err != nil {
		return err
	}
	defer ui.Close()

	go func() {
		for {
			time.Sleep(time.Second)

			if time.Since(time.Unix(atomic.LoadInt64(&m.lastInputTime), 0)) > timeout {
				ui.StopLoop()
				return
			}
		}
	}()

	m.run()
	return nil
}
