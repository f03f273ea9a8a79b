package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Fare,Embarked
1,0,3,"Braund, Mr. Owen Harris",male,22,1,0,7.25,S
2,1,1,"Cumings, Mrs. John Bradley",female,38,1,0,71.2833,C
3,1,3,"Heikkinen, Miss. Laina",female,,0,0,7.925,S
,0,3,"No Key",male,30,0,0,8.05,S
4,,1,"No Outcome",female,35,1,0,53.1,S
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passengers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFiltersInvalidRows(t *testing.T) {
	records, err := Load(writeTempCSV(t, sampleCSV))
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "1", records[0].PassengerID)
	assert.Equal(t, "2", records[1].PassengerID)
	assert.Equal(t, "3", records[2].PassengerID)
}

func TestLoadMissingAttributeBecomesNil(t *testing.T) {
	records, err := Load(writeTempCSV(t, sampleCSV))
	require.NoError(t, err)

	laina := records[2]
	assert.Nil(t, laina.Age)
	require.NotNil(t, laina.Survived)
	assert.Equal(t, 1, *laina.Survived)
	require.NotNil(t, laina.Fare)
	assert.InDelta(t, 7.925, *laina.Fare, 1e-9)
}

func TestLoadEmptyAfterFiltering(t *testing.T) {
	csv := "PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Fare,Embarked\n,0,3,x,male,1,0,0,1,S\n"
	_, err := Load(writeTempCSV(t, csv))
	assert.Error(t, err)
}

func TestLoadUnreadableFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestFilterPreservesOrder(t *testing.T) {
	one, zero := 1, 0
	rows := []Record{
		{PassengerID: "9", Survived: &one},
		{PassengerID: "", Survived: &zero},
		{PassengerID: "4", Survived: nil},
		{PassengerID: "2", Survived: &zero},
	}
	got := Filter(rows)
	require.Len(t, got, 2)
	assert.Equal(t, "9", got[0].PassengerID)
	assert.Equal(t, "2", got[1].PassengerID)
}
