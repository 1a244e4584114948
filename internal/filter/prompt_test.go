package filter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/salesreport/internal/domain"
)

func TestPromptCollectsCriteria(t *testing.T) {
	accepted := []domain.Transaction{
		txn("T001", domain.RegionWest, 25),
		txn("T002", domain.RegionEast, 75),
	}

	in := strings.NewReader("West\n10\n50\n")
	var out bytes.Buffer

	criteria, err := Prompt(in, &out, accepted)

	require.NoError(t, err)
	assert.Equal(t, "West", criteria.Region)
	require.NotNil(t, criteria.MinAmount)
	require.NotNil(t, criteria.MaxAmount)
	assert.Equal(t, 10.0, *criteria.MinAmount)
	assert.Equal(t, 50.0, *criteria.MaxAmount)

	assert.Contains(t, out.String(), "Regions present: East, West")
	assert.Contains(t, out.String(), "Amount range: 25.00 to 75.00")
}

func TestPromptBlankAnswersMeanNoFilter(t *testing.T) {
	in := strings.NewReader("\n\n\n")
	var out bytes.Buffer

	criteria, err := Prompt(in, &out, nil)

	require.NoError(t, err)
	assert.True(t, criteria.IsZero())
	assert.Contains(t, out.String(), "Regions present: (none)")
}

func TestPromptEOFMeansNoAnswer(t *testing.T) {
	criteria, err := Prompt(strings.NewReader(""), &bytes.Buffer{}, nil)

	require.NoError(t, err)
	assert.True(t, criteria.IsZero())
}

func TestPromptRejectsNonNumericBound(t *testing.T) {
	in := strings.NewReader("West\nlots\n")
	_, err := Prompt(in, &bytes.Buffer{}, nil)

	require.ErrorIs(t, err, ErrBadCriteria)
}
