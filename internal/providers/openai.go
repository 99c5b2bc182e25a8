package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ChamsBouzaiene/voyager/internal/engine"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAIClient implements engine.LLMClient by calling the OpenAI SDK directly.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	baseURL string
}

// NewOpenAIClient creates a new OpenAI client for the engine.
func NewOpenAIClient(apiKey, modelName, baseURL string) (*OpenAIClient, error) {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	client := openai.NewClientWithConfig(config)

	return &OpenAIClient{
		client:  client,
		model:   modelName,
		baseURL: baseURL,
	}, nil
}

// Chat implements engine.LLMClient.Chat by calling the OpenAI API directly.
func (c *OpenAIClient) Chat(ctx context.Context, modelName string, messages []engine.ChatMessage, toolSchemas []engine.ToolSchema, opts engine.ChatOptions) (engine.LLMResponse, error) {
	openaiMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	var systemMsg string

	// OpenAI requires tool messages to follow an assistant message with
	// tool_calls; track whether the previous assistant message had them.
	var prevAssistantHadToolCalls bool

	for i, msg := range messages {
		switch msg.Role {
		case engine.RoleSystem:
			systemMsg = msg.Content
			prevAssistantHadToolCalls = false
		case engine.RoleUser:
			openaiMsgs = append(openaiMsgs, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: msg.Content,
			})
			prevAssistantHadToolCalls = false
		case engine.RoleAssistant:
			// The SDK may serialize empty content as null, which the API
			// rejects; a single space is semantically equivalent.
			content := msg.Content
			if content == "" {
				content = " "
			}

			var toolCalls []openai.ToolCall
			if len(msg.ToolCalls) > 0 {
				toolCalls = make([]openai.ToolCall, 0, len(msg.ToolCalls))
				for _, tc := range msg.ToolCalls {
					argsJSON, _ := json.Marshal(tc.Args)
					toolCalls = append(toolCalls, openai.ToolCall{
						ID:   tc.ID,
						Type: "function",
						Function: openai.FunctionCall{
							Name:      tc.Name,
							Arguments: string(argsJSON),
						},
					})
				}
			}

			openaiMsgs = append(openaiMsgs, openai.ChatCompletionMessage{
				Role:      openai.ChatMessageRoleAssistant,
				Content:   content,
				ToolCalls: toolCalls,
			})
			prevAssistantHadToolCalls = len(msg.ToolCalls) > 0
		case engine.RoleTool:
			if !prevAssistantHadToolCalls {
				// Shouldn't happen in normal flow; skip to avoid API error
				continue
			}
			content := msg.Content
			if content == "" {
				content = "{}"
			}
			// msg.Name carries the tool_call_id, not the tool name
			openaiMsgs = append(openaiMsgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: msg.Name,
				Content:    content,
			})
			if i+1 < len(messages) && messages[i+1].Role == engine.RoleAssistant {
				prevAssistantHadToolCalls = false
			}
		}
	}

	var tools []openai.Tool
	for _, ts := range toolSchemas {
		var schemaObj map[string]any
		if err := json.Unmarshal([]byte(ts.JSONSchema), &schemaObj); err != nil {
			return engine.LLMResponse{}, fmt.Errorf("invalid tool schema JSON for %s: %w", ts.Name, err)
		}

		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ts.Name,
				Description: ts.Description,
				Parameters:  schemaObj,
			},
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    modelName,
		Messages: openaiMsgs,
	}

	if systemMsg != "" {
		req.Messages = append([]openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemMsg,
		}}, req.Messages...)
	}

	if len(tools) > 0 {
		req.Tools = tools
		// Let the model decide when to use tools
		req.ToolChoice = "auto"
	}

	if opts.MaxOutputTokens > 0 {
		req.MaxTokens = opts.MaxOutputTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = &opts.Temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		httpStatus, retryAfter := extractErrorMetadata(err)
		return engine.LLMResponse{}, engine.WrapLLMError(err, httpStatus, retryAfter)
	}

	if len(resp.Choices) == 0 {
		return engine.LLMResponse{}, fmt.Errorf("empty response from OpenAI")
	}

	choice := resp.Choices[0]

	assistantMsg := engine.ChatMessage{
		Role:    engine.RoleAssistant,
		Content: choice.Message.Content,
	}

	var toolCalls []engine.ToolCall
	if len(choice.Message.ToolCalls) > 0 {
		toolCalls = make([]engine.ToolCall, 0, len(choice.Message.ToolCalls))
		for _, tc := range choice.Message.ToolCalls {
			var args map[string]any
			if tc.Function.Arguments != "" {
				if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
					args = make(map[string]any)
				}
			} else {
				args = make(map[string]any)
			}

			toolCalls = append(toolCalls, engine.ToolCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Args: args,
			})
		}
		assistantMsg.ToolCalls = toolCalls
	}

	finishReason := "stop"
	if len(toolCalls) > 0 {
		finishReason = "tool_calls"
	} else if choice.FinishReason == openai.FinishReasonLength {
		finishReason = "length"
	} else if choice.FinishReason == openai.FinishReasonContentFilter {
		finishReason = "content_filter"
	}

	usage := engine.Usage{
		Prompt:     resp.Usage.PromptTokens,
		Completion: resp.Usage.CompletionTokens,
		Total:      resp.Usage.TotalTokens,
	}

	return engine.LLMResponse{
		Assistant:    assistantMsg,
		ToolCalls:    toolCalls,
		Usage:        usage,
		FinishReason: finishReason,
	}, nil
}

// extractErrorMetadata extracts HTTP status code and Retry-After header from an error.
func extractErrorMetadata(err error) (int, string) {
	if err == nil {
		return 0, ""
	}

	errStr := err.Error()
	var httpStatus int
	var retryAfter string

	if strings.Contains(errStr, "429") {
		httpStatus = http.StatusTooManyRequests
	} else if strings.Contains(errStr, "500") {
		httpStatus = http.StatusInternalServerError
	} else if strings.Contains(errStr, "502") {
		httpStatus = http.StatusBadGateway
	} else if strings.Contains(errStr, "503") {
		httpStatus = http.StatusServiceUnavailable
	} else if strings.Contains(errStr, "504") {
		httpStatus = http.StatusGatewayTimeout
	} else if strings.Contains(errStr, "401") {
		httpStatus = http.StatusUnauthorized
	} else if strings.Contains(errStr, "403") {
		httpStatus = http.StatusForbidden
	} else if strings.Contains(errStr, "400") {
		httpStatus = http.StatusBadRequest
	} else if strings.Contains(errStr, "402") {
		httpStatus = http.StatusPaymentRequired
	}

	if idx := strings.Index(strings.ToLower(errStr), "retry-after"); idx != -1 {
		remaining := errStr[idx+11:]
		parts := strings.Fields(remaining)
		if len(parts) > 0 {
			retryAfter = parts[0]
		}
	} else if idx := strings.Index(strings.ToLower(errStr), "retry after"); idx != -1 {
		remaining := errStr[idx+12:]
		parts := strings.Fields(remaining)
		if len(parts) > 0 {
			retryAfter = parts[0]
		}
	}

	return httpStatus, retryAfter
}
