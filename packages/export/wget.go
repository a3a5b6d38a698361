package export

import (
	"github.com/MehmetMelik/steq/packages/model"
)

func exportAsWget(input model.ExportRequestInput) string {
	url := BuildURL(input.URL, input.QueryParams)
	headers := EffectiveHeaders(input.Headers, input.BodyType)

	tokens := []string{"wget", "--method=" + string(input.Method)}
	for _, h := range headers {
		tokens = append(tokens, "--header="+ShellEscape(h.Key+": "+h.Value))
	}
	if input.HasBody() {
		tokens = append(tokens, "--body-data="+ShellEscape(input.Body()))
	}
	// Write the response to stdout rather than a file.
	tokens = append(tokens, "-O -", ShellEscape(url))

	return joinTokens(tokens, 3)
}
