package formsapi

import (
	"fmt"
	"strings"

	"github.com/dgallion1/formgest/internal/compile"
)

// Requests wraps a compiled batch into the per-operation request
// objects the batch-update endpoint expects.
func Requests(batch compile.Batch) ([]map[string]any, error) {
	requests := make([]map[string]any, 0, len(batch))
	for _, item := range batch {
		switch item.Op {
		case compile.OpCreateItem:
			requests = append(requests, map[string]any{
				"createItem": map[string]any{
					"item":     item.Payload,
					"location": map[string]any{"index": item.LocationIndex},
				},
			})
		case compile.OpUpdateItem:
			payload := make(map[string]any, len(item.Payload)+1)
			for k, v := range item.Payload {
				payload[k] = v
			}
			payload["itemId"] = item.ItemID
			requests = append(requests, map[string]any{
				"updateItem": map[string]any{
					"item":       payload,
					"updateMask": item.UpdateMask,
				},
			})
		case compile.OpDeleteItem:
			requests = append(requests, map[string]any{
				"deleteItem": map[string]any{
					"location": map[string]any{"index": item.LocationIndex},
				},
			})
		default:
			return nil, fmt.Errorf("unknown operation kind: %s", item.Op)
		}
	}
	return requests, nil
}

// InfoUpdateRequest updates a form's title and description. Used to
// apply the description after creation, since the service rejects it
// at creation time.
func InfoUpdateRequest(title, description string) map[string]any {
	return map[string]any{
		"updateFormInfo": map[string]any{
			"info": map[string]any{
				"title":       title,
				"description": description,
			},
			"updateMask": "title,description",
		},
	}
}

// SettingsRequests converts the settings dictionary into updateSettings
// requests. Recognized keys: is_quiz, collect_email,
// allow_response_editing, confirmation_message. Unrecognized keys are
// ignored.
func SettingsRequests(settings map[string]any) []map[string]any {
	var requests []map[string]any

	if isQuiz, ok := settings["is_quiz"].(bool); ok {
		requests = append(requests, map[string]any{
			"updateSettings": map[string]any{
				"settings": map[string]any{
					"quizSettings": map[string]any{"isQuiz": isQuiz},
				},
				"updateMask": "quizSettings.isQuiz",
			},
		})
	}

	general := map[string]any{}
	var maskParts []string
	if v, ok := settings["collect_email"].(bool); ok {
		general["collectEmail"] = v
		maskParts = append(maskParts, "generalSettings.collectEmail")
	}
	if v, ok := settings["allow_response_editing"].(bool); ok {
		general["allowResponseEditing"] = v
		maskParts = append(maskParts, "generalSettings.allowResponseEditing")
	}
	if v, ok := settings["confirmation_message"].(string); ok {
		general["confirmationMessage"] = v
		maskParts = append(maskParts, "generalSettings.confirmationMessage")
	}
	if len(general) > 0 {
		requests = append(requests, map[string]any{
			"updateSettings": map[string]any{
				"settings":   map[string]any{"generalSettings": general},
				"updateMask": strings.Join(maskParts, ","),
			},
		})
	}

	return requests
}
