package app

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/scopelab/eegscope/core"
	"github.com/scopelab/eegscope/core/trace"
)

type handler func(args []string)

type repl struct {
	controller controller
	out        io.Writer
	outDir     string
	key        string
	frame      core.Frame
	handlers   map[string]handler
}

func newRepl(controller controller, out io.Writer, outDir, key string) *repl {
	result := &repl{controller: controller, out: out, outDir: outDir, key: key}
	result.handlers = map[string]handler{
		"next":     result.next,
		"prev":     result.prev,
		"goto":     result.gotoTrial,
		"mode":     result.mode,
		"paging":   result.paging,
		"channel":  result.channel,
		"gain":     result.gain,
		"duration": result.duration,
		"note":     result.note,
		"delnote":  result.delnote,
		"notes":    result.notes,
		"value":    result.value,
		"export":   result.export,
		"info":     result.info,
		"help":     result.help,
	}
	return result
}

func (r *repl) run(in io.Reader) {
	r.frame = r.await()
	r.printSummary()

	scanner := bufio.NewScanner(in)
	fmt.Fprint(r.out, "> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Fprint(r.out, "> ")
			continue
		}
		verb, args := fields[0], fields[1:]
		if verb == "quit" || verb == "exit" {
			return
		}
		if action, ok := r.handlers[verb]; ok {
			action(args)
		} else {
			fmt.Fprintf(r.out, "unknown command %q, try help\n", verb)
		}
		fmt.Fprint(r.out, "> ")
	}
}

// dispatch queues the given operation, adopts the frame it produces, and
// mirrors it into the output directory.
func (r *repl) dispatch(op func()) {
	r.drain()
	op()
	r.frame = r.await()
	if r.outDir == "" {
		return
	}
	if err := exportFrame(r.frame, filepath.Join(r.outDir, r.key+".png")); err != nil {
		log.Printf("cannot mirror the view: %v", err)
	}
}

func (r *repl) drain() {
	for {
		select {
		case frame := <-r.controller.Frames():
			r.frame = frame
		default:
			return
		}
	}
}

func (r *repl) await() core.Frame {
	select {
	case frame := <-r.controller.Frames():
		return frame
	case <-time.After(5 * time.Second):
		log.Print("no frame from main loop")
		return r.frame
	}
}

func (r *repl) next(_ []string) {
	r.dispatch(r.controller.NextTrial)
	r.printSummary()
}

func (r *repl) prev(_ []string) {
	r.dispatch(r.controller.PrevTrial)
	r.printSummary()
}

func (r *repl) gotoTrial(args []string) {
	trial, err := argInt(args)
	if err != nil {
		fmt.Fprintln(r.out, "usage: goto <trial>")
		return
	}
	r.dispatch(func() {
		r.controller.JumpToTrial(trial - 1)
	})
	r.printSummary()
}

func (r *repl) mode(args []string) {
	var mode core.ViewMode
	switch strings.Join(args, "") {
	case "raw":
		mode = core.ViewRaw
	case "spectrogram", "spec":
		mode = core.ViewSpectrogram
	default:
		fmt.Fprintln(r.out, "usage: mode raw|spectrogram")
		return
	}
	r.dispatch(func() {
		r.controller.SetViewMode(mode)
	})
	r.printSummary()
}

func (r *repl) paging(args []string) {
	var mode core.PagingMode
	switch strings.Join(args, "") {
	case "paged":
		mode = core.PagingPaged
	case "scrolling", "scroll":
		mode = core.PagingScrolling
	default:
		fmt.Fprintln(r.out, "usage: paging paged|scrolling")
		return
	}
	r.dispatch(func() {
		r.controller.SetPagingMode(mode)
	})
	r.printSummary()
}

func (r *repl) channel(args []string) {
	channel, err := argInt(args)
	if err != nil {
		fmt.Fprintln(r.out, "usage: channel <number>")
		return
	}
	r.dispatch(func() {
		r.controller.SelectChannel(channel - 1)
	})
	r.printSummary()
}

func (r *repl) gain(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: gain <value>")
		return
	}
	r.dispatch(func() {
		r.controller.EnterGain(args[0])
	})
	fmt.Fprintf(r.out, "gain %s entered, commits after the settle interval\n", args[0])
}

func (r *repl) duration(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: duration <seconds>")
		return
	}
	r.dispatch(func() {
		r.controller.EnterTrialDuration(args[0])
	})
	fmt.Fprintf(r.out, "duration %s entered, commits after the settle interval\n", args[0])
}

func (r *repl) note(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, "usage: note [normal|artifact|seizure|other] <text>")
		return
	}
	kind := core.AnnotationNormal
	if len(args) > 1 && core.ValidAnnotationType(core.AnnotationType(args[0])) {
		kind = core.AnnotationType(args[0])
		args = args[1:]
	}
	note := strings.Join(args, " ")
	r.dispatch(func() {
		r.controller.Annotate(note, kind)
	})
	r.printNotes()
}

func (r *repl) delnote(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: delnote <number|id>")
		return
	}
	id := args[0]
	if ordinal, err := strconv.Atoi(id); err == nil {
		if ordinal < 1 || ordinal > len(r.frame.Annotations) {
			fmt.Fprintf(r.out, "no note %d\n", ordinal)
			return
		}
		id = r.frame.Annotations[ordinal-1].ID
	}
	r.dispatch(func() {
		r.controller.DeleteAnnotation(id)
	})
	r.printNotes()
}

func (r *repl) notes(_ []string) {
	r.printNotes()
}

func (r *repl) value(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "usage: value <x> <y>")
		return
	}
	x, errX := strconv.ParseFloat(args[0], 64)
	y, errY := strconv.ParseFloat(args[1], 64)
	if errX != nil || errY != nil {
		fmt.Fprintln(r.out, "usage: value <x> <y>")
		return
	}
	sample, ok := trace.ValueAt(r.frame.Trace, r.frame.Slice, core.Px(x), core.Px(y))
	if !ok {
		fmt.Fprintln(r.out, "no sample at this position")
		return
	}
	fmt.Fprintf(r.out, "sample %d at %s\n", sample.Index, sample.Time)
	for c, value := range sample.Values {
		fmt.Fprintf(r.out, "  %s: %.3f\n", r.label(c), value)
	}
}

func (r *repl) export(args []string) {
	name := fmt.Sprintf("%s-trial%03d.png", r.key, r.frame.CurrentTrial+1)
	if r.frame.ViewMode == core.ViewSpectrogram {
		name = fmt.Sprintf("%s-trial%03d-spectrogram.png", r.key, r.frame.CurrentTrial+1)
	}
	path := filepath.Join(r.outDir, name)
	if len(args) > 0 {
		path = args[0]
	}
	if err := exportFrame(r.frame, path); err != nil {
		fmt.Fprintf(r.out, "export failed: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "saved %s\n", path)
}

func (r *repl) info(_ []string) {
	r.printSummary()
	frame := r.frame
	if frame.Patient != "" {
		fmt.Fprintf(r.out, "patient %s\n", frame.Patient)
	}
	fmt.Fprintf(r.out, "start offset %s, %d notes\n", frame.StartOffset, len(frame.Annotations))
	fmt.Fprintf(r.out, "channels: %s\n", strings.Join(frame.Labels, " "))
}

func (r *repl) help(_ []string) {
	fmt.Fprint(r.out, `next | prev              page through the trials
goto <trial>             jump to the given trial
mode raw|spectrogram     switch the view
paging paged|scrolling   switch between one trial and the whole recording
channel <number>         select the spectrogram channel
gain <value>             set the amplitude gain
duration <seconds>       set the trial duration
note [type] <text>       annotate the current trial
delnote <number|id>      delete a note
notes                    list all notes
value <x> <y>            inspect the sample under the given pixel
export [path]            save the current view as PNG
info                     show the session state
quit                     leave
`)
}

func (r *repl) printSummary() {
	frame := r.frame
	fmt.Fprintf(r.out, "trial %d/%d  %s  %s  gain %.2f  duration %ds  channel %s\n",
		frame.CurrentTrial+1, frame.TotalTrials, frame.ViewMode, frame.PagingMode,
		frame.Gain, frame.TrialDuration, r.label(frame.SelectedChannel))
}

func (r *repl) printNotes() {
	if len(r.frame.Annotations) == 0 {
		fmt.Fprintln(r.out, "no notes")
		return
	}
	for i, annotation := range r.frame.Annotations {
		fmt.Fprintf(r.out, "%d. trial %d @%s [%s] %s\n",
			i+1, annotation.TrialIndex+1, annotation.Timestamp, annotation.Type, annotation.Note)
	}
}

func (r *repl) label(channel int) string {
	if channel >= 0 && channel < len(r.frame.Labels) {
		return r.frame.Labels[channel]
	}
	return strconv.Itoa(channel + 1)
}

func argInt(args []string) (int, error) {
	if len(args) != 1 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(args[0])
}
