package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"workshop-lab/domain"
	"workshop-lab/repositories"
	"workshop-lab/services"
)

func printWelcome() {
	color.New(color.FgGreen, color.OpBold).Println("workshop-lab: /list to see configs, /load <file> to begin")
}

func printPrompt(phase domain.Phase) {
	color.New(color.FgCyan).Printf("[%s] >>> ", phase)
}

func render(resp services.Response, err error) {
	if err != nil {
		color.New(color.FgRed, color.OpBold).Println(err.Error())
		return
	}

	for _, line := range resp.Feedback {
		color.New(color.FgYellow).Println(line)
	}
	if resp.Config != nil {
		renderConfig(*resp.Config)
	}
	if resp.Files != nil {
		renderFiles(resp.Files)
	}
	if resp.Entries != nil {
		renderTranscript(resp.Entries)
	}
	if resp.Hits != nil {
		renderHits(resp.Hits)
	}
}

func renderConfig(config domain.WorkshopConfig) {
	color.New(color.FgGreen, color.OpBold).Printf("Workshop: %s\n", config.Name)
	if config.Topic != "" {
		fmt.Printf("Topic: %s\n", config.Topic)
	}
	if config.Prompt != "" {
		fmt.Printf("Prompt: %s\n", config.Prompt)
	}

	table := newTable([]string{"Name", "Role", "Background", "Active"})
	for _, p := range config.Participants {
		table.Append([]string{p.Name, string(p.Role), p.Background, strconv.FormatBool(p.Active)})
	}
	table.Render()
}

func renderFiles(files []string) {
	if len(files) == 0 {
		fmt.Println("No configuration files found.")
		return
	}
	table := newTable([]string{"#", "File"})
	for i, f := range files {
		table.Append([]string{strconv.Itoa(i + 1), f})
	}
	table.Render()
}

func renderTranscript(entries []domain.TranscriptEntry) {
	color.New(color.FgGreen, color.OpBold).Println("Transcript:")
	for _, e := range entries {
		speaker := color.New(color.FgBlue, color.OpBold).Sprint(e.Speaker)
		switch e.Kind {
		case domain.KindSystemNote:
			color.New(color.FgDarkGray).Printf("%4d  %s\n", e.Seq, e.Content)
		case domain.KindSummary:
			color.New(color.FgMagenta).Printf("%4d  [summary] %s\n", e.Seq, e.Content)
		default:
			fmt.Printf("%4d  %s: %s\n", e.Seq, speaker, e.Content)
		}
	}
}

func renderHits(hits []repositories.DiskEntry) {
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return
	}
	table := newTable([]string{"Workshop", "Speaker", "Content"})
	for _, h := range hits {
		table.Append([]string{h.Workshop, h.Speaker, h.Content})
	}
	table.Render()
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
