package promobparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/promob-import/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)

func newTestParser() (*Parser, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return New(logger, WithClock(func() time.Time { return fixedNow })), logger
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return raw
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

const minimalPromob = `<PROMOB>
  <CUSTOMERSDATA><DATA ID="Environment" VALUE="Sala"/></CUSTOMERSDATA>
  <AMBIENTS>
    <AMBIENT DESCRIPTION="Sala">
      <CATEGORIES>
        <CATEGORY DESCRIPTION="Estofados">
          <ITEM DESCRIPTION="Sofa" QUANTITY="1"/>
        </CATEGORY>
      </CATEGORIES>
    </AMBIENT>
  </AMBIENTS>
</PROMOB>`
