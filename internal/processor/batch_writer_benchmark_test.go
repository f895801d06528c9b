package processor

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"condohub/server/internal/database"
	"condohub/server/internal/models"
	"condohub/server/internal/unitgen"
)

func BenchmarkBatchWriting(b *testing.B) {
	cfg := models.PropertyConfiguration{
		Blocks:         4,
		FloorsPerBlock: 25,
		UnitsPerFloor:  10,
		NamingScheme:   models.DefaultNamingScheme(),
	}
	units, err := unitgen.Generate("condo-1", cfg)
	require.NoError(b, err)

	for _, batchSize := range []int{10, 50, 100, 500} {
		b.Run(fmt.Sprintf("BatchSize_%d_Units_%d", batchSize, len(units)), func(b *testing.B) {
			logger := logrus.New()
			logger.SetLevel(logrus.WarnLevel) // Reduce logging noise during benchmarks

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				db, err := database.NewTestDB()
				require.NoError(b, err)
				writer := NewBatchWriter(db, testConfig(batchSize, 0), logger)
				b.StartTimer()

				_, err = writer.Write(context.Background(), units)
				require.NoError(b, err)

				b.StopTimer()
				db.Close()
				b.StartTimer()
			}
		})
	}
}
