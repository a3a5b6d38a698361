package export

import (
	"github.com/MehmetMelik/steq/packages/model"
)

func exportAsCurl(input model.ExportRequestInput) string {
	url := BuildURL(input.URL, input.QueryParams)
	headers := EffectiveHeaders(input.Headers, input.BodyType)

	tokens := []string{"curl"}
	// GET is curl's default.
	if input.Method != model.MethodGet {
		tokens = append(tokens, "-X "+string(input.Method))
	}
	for _, h := range headers {
		tokens = append(tokens, "-H "+ShellEscape(h.Key+": "+h.Value))
	}
	if input.HasBody() {
		tokens = append(tokens, "-d "+ShellEscape(input.Body()))
	}
	tokens = append(tokens, ShellEscape(url))

	return joinTokens(tokens, 2)
}
