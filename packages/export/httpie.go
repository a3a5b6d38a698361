package export

import (
	"strings"

	"github.com/MehmetMelik/steq/packages/model"
)

func exportAsHTTPie(input model.ExportRequestInput) string {
	url := BuildURL(input.URL, input.QueryParams)
	headers := EffectiveHeaders(input.Headers, input.BodyType)

	tokens := []string{"http", string(input.Method), ShellEscape(url)}
	for _, h := range headers {
		tokens = append(tokens, ShellEscape(h.Key)+":"+ShellEscape(h.Value))
	}

	// A raw body is piped on stdin so HTTPie sends it verbatim.
	if input.HasBody() {
		return "echo " + ShellEscape(input.Body()) + " | " + strings.Join(tokens, " ")
	}
	return joinTokens(tokens, 3)
}
