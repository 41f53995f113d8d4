package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_TextReply(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Reply("ok", "yak: a hairy bovine (added by bob)"))
	assert.Equal(t, "yak: a hairy bovine (added by bob)\n", buf.String())
}

func TestOutputFormatter_JSONReply(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Reply("not_found", `No entry found for "x".`))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Status)
	assert.Equal(t, `No entry found for "x".`, resp.Message)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeLoadFailed, "dictionary unreadable", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E003", resp.Error.Code)
	assert.Equal(t, "dictionary unreadable", resp.Error.Message)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeConfig, "bad config", nil))
	assert.Equal(t, "Error [E002]: bad config\n", buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("loaded %d entries", 7)
	assert.Empty(t, out.String())
	assert.Equal(t, "loaded 7 entries\n", errOut.String())

	formatter.Verbose = false
	errOut.Reset()
	formatter.VerboseLog("should not appear")
	assert.Empty(t, errOut.String())
}

func TestExitError(t *testing.T) {
	base := errors.New("disk full")
	err := WrapExitError(ExitCommandError, ErrCodeWriteFailed, "saving dictionary", base)

	assert.Equal(t, "saving dictionary: disk full", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", err)))
}

func TestGetExitCode_PlainError(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("anything")))
}

func TestGetErrCode_CarriedNotDerived(t *testing.T) {
	// The code is the one set at the wrap site, even when the error text
	// mentions another subsystem.
	err := WrapExitError(ExitCommandError, ErrCodeConfig, "loading config",
		errors.New("dictionary path is required"))
	assert.Equal(t, ErrCodeConfig, GetErrCode(err))

	wrapped := fmt.Errorf("startup: %w", err)
	assert.Equal(t, ErrCodeConfig, GetErrCode(wrapped))
}

func TestGetErrCode_DefaultsToGeneric(t *testing.T) {
	assert.Equal(t, ErrCodeGeneric, GetErrCode(errors.New("journal exploded")))
	assert.Equal(t, ErrCodeGeneric, GetErrCode(NewExitError(ExitFailure, "no code set")))
}
