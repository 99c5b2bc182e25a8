package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy defines retry behavior for a specific operation type.
type RetryPolicy struct {
	MaxRetries   int           // Maximum number of retry attempts (0 = no retries)
	InitialDelay time.Duration // Initial delay before first retry
	MaxDelay     time.Duration // Maximum delay cap
	Multiplier   float64       // Exponential backoff multiplier (e.g., 2.0)
	Jitter       bool          // Whether to add random jitter to delays
}

// RetryConfig holds separate retry policies for LLM and tool calls.
type RetryConfig struct {
	LLMPolicy  RetryPolicy // Policy for LLM API calls
	ToolPolicy RetryPolicy // Policy for tool executions
}

// DefaultRetryConfig is defined in config.go for centralized configuration management.

// RetryableFunc is a function that can be retried.
type RetryableFunc[T any] func(ctx context.Context) (T, error)

// RetryWithPolicy executes a function with retry logic based on the policy.
// Returns the result on success, or the last error if all retries are exhausted.
func RetryWithPolicy[T any](
	ctx context.Context,
	policy RetryPolicy,
	fn RetryableFunc[T],
	classifyError func(error) RetryClass,
	onRetry func(attempt int, delay time.Duration, err error),
) (T, error) {
	var zero T

	attempt := 0

	for {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		class := classifyError(err)
		if class == RetryClassNonRetryable {
			return zero, err
		}

		if attempt >= policy.MaxRetries {
			return zero, NewRetryExhaustedError(err, attempt, policy.MaxRetries, false)
		}

		// For "maybe" class, limit to 1-2 retries
		if class == RetryClassMaybe && attempt >= 2 {
			return zero, NewRetryExhaustedError(err, attempt, 2, true)
		}

		delay := calculateDelay(policy, attempt, err)

		if onRetry != nil {
			onRetry(attempt+1, delay, err)
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		case <-time.After(delay):
		}

		attempt++
	}
}

// calculateDelay computes the delay for a retry attempt.
func calculateDelay(policy RetryPolicy, attempt int, err error) time.Duration {
	// Retry-After wins over backoff, capped at MaxDelay
	retryAfter := ExtractRetryAfter(err)
	if retryAfter > 0 {
		if retryAfter > policy.MaxDelay {
			return policy.MaxDelay
		}
		return retryAfter
	}

	// Exponential backoff: initialDelay * (multiplier ^ attempt)
	delay := float64(policy.InitialDelay) * math.Pow(policy.Multiplier, float64(attempt))

	if delay > float64(policy.MaxDelay) {
		delay = float64(policy.MaxDelay)
	}

	// 0-20% random variation
	if policy.Jitter {
		delay += rand.Float64() * 0.2 * delay
	}

	return time.Duration(delay)
}

// RetryLLMCall wraps an LLM call with retry logic.
func RetryLLMCall(
	ctx context.Context,
	policy RetryPolicy,
	llm LLMClient,
	model string,
	messages []ChatMessage,
	toolSchemas []ToolSchema,
	opts ChatOptions,
	onRetry func(attempt int, delay time.Duration, err error),
) (LLMResponse, error) {
	return RetryWithPolicy(
		ctx,
		policy,
		func(ctx context.Context) (LLMResponse, error) {
			return llm.Chat(ctx, model, messages, toolSchemas, opts)
		},
		ClassifyLLMError,
		onRetry,
	)
}

// RetryToolCall wraps a tool call with retry logic.
func RetryToolCall(
	ctx context.Context,
	policy RetryPolicy,
	call ToolCall,
	reg ToolRegistry,
	onRetry func(attempt int, delay time.Duration, err error),
) (string, error) {
	tool, ok := reg[call.Name]
	if !ok {
		return "", fmt.Errorf("tool not found: %s", call.Name)
	}

	// Non-idempotent tools never retry
	toolRetryable := tool.Retryable
	if !toolRetryable {
		policy = RetryPolicy{MaxRetries: 0}
	}

	return RetryWithPolicy(
		ctx,
		policy,
		func(ctx context.Context) (string, error) {
			return executeTool(ctx, call, reg)
		},
		func(err error) RetryClass {
			return ClassifyToolError(err, toolRetryable)
		},
		onRetry,
	)
}
