package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/saisubham-29/medrag/core/generate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingComplete captures the messages it was called with and returns
// a fixed reply.
func recordingComplete(reply string, captured *[]generate.Message) generate.CompleteFunc {
	return func(ctx context.Context, system string, messages []generate.Message, temperature float32) (string, error) {
		*captured = append([]generate.Message{}, messages...)
		return reply, nil
	}
}

func TestNewBot(t *testing.T) {
	t.Run("Nil completion function", func(t *testing.T) {
		_, err := NewBot(nil)
		assert.Error(t, err)
	})
}

func TestChatEmergency(t *testing.T) {
	called := false
	complete := func(ctx context.Context, system string, messages []generate.Message, temperature float32) (string, error) {
		called = true
		return "should not happen", nil
	}
	bot, err := NewBot(complete)
	require.NoError(t, err)

	reply, err := bot.Chat(context.Background(), "I have crushing chest pain right now")
	require.NoError(t, err)

	assert.True(t, reply.IsEmergency)
	assert.Equal(t, SeverityCritical, reply.Severity)
	assert.Equal(t, EmergencyAlert, reply.Response)
	assert.False(t, called, "Expected emergency gate to short-circuit the model call")
}

func TestChatContextTracking(t *testing.T) {
	var captured []generate.Message
	bot, err := NewBot(recordingComplete("Rest and drink fluids.", &captured))
	require.NoError(t, err)

	reply, err := bot.Chat(context.Background(), "I am 34 years old with diabetes and I have a fever, I am taking metformin")
	require.NoError(t, err)

	assert.Equal(t, "34", reply.PatientContext["age"])
	assert.Equal(t, "diabetes", reply.PatientContext["conditions"])
	assert.Equal(t, "metformin", reply.PatientContext["medications"])
	assert.Contains(t, reply.Symptoms, "fever")

	require.NotEmpty(t, captured)
	assert.Contains(t, captured[len(captured)-1].Content, "Patient context:")
	assert.Contains(t, captured[len(captured)-1].Content, "User message: I am 34 years old")
}

func TestChatSeverity(t *testing.T) {
	cases := []struct {
		reply    string
		expected Severity
	}{
		{"Please seek help immediately, this is urgent.", SeverityHigh},
		{"You should see a doctor within a few days.", SeverityMedium},
		{"Rest and drink plenty of fluids.", SeverityLow},
	}

	for _, c := range cases {
		var captured []generate.Message
		bot, err := NewBot(recordingComplete(c.reply, &captured))
		require.NoError(t, err)

		reply, err := bot.Chat(context.Background(), "I have a mild fever")
		require.NoError(t, err)
		assert.Equal(t, c.expected, reply.Severity, "reply %q", c.reply)
	}
}

func TestChatHistoryCap(t *testing.T) {
	var captured []generate.Message
	bot, err := NewBot(recordingComplete("Noted.", &captured))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := bot.Chat(context.Background(), "my stomach hurts")
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, len(captured), 12, "Expected rolling history capped at 12 messages")
}

func TestChatCompletionFailure(t *testing.T) {
	failing := func(ctx context.Context, system string, messages []generate.Message, temperature float32) (string, error) {
		return "", errors.New("backend down")
	}
	bot, err := NewBot(failing)
	require.NoError(t, err)

	_, err = bot.Chat(context.Background(), "I have a sore throat")
	var genErr *generate.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "chat", genErr.Task)
}

func TestReset(t *testing.T) {
	var captured []generate.Message
	bot, err := NewBot(recordingComplete("Ok.", &captured))
	require.NoError(t, err)

	_, err = bot.Chat(context.Background(), "I am 50 years old with asthma and a cough")
	require.NoError(t, err)
	require.NotEmpty(t, bot.Symptoms())
	require.NotEmpty(t, bot.Conditions())

	bot.Reset()

	assert.Empty(t, bot.Symptoms())
	assert.Empty(t, bot.Conditions())
}
