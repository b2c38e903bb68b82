package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoiningExistingCall(t *testing.T) {
	for _, q := range []string{"groupId=g1", "teamsLink=https%3A%2F%2Fteams", "roomId=r1"} {
		t.Run(q, func(t *testing.T) {
			values, err := url.ParseQuery(q)
			assert.NoError(t, err)
			assert.True(t, HintsFromQuery(values).JoiningExistingCall())
		})
	}
}

func TestJoiningExistingCall_NoHints(t *testing.T) {
	assert.False(t, HintsFromQuery(url.Values{}).JoiningExistingCall())
	assert.False(t, HintsFromQuery(url.Values{"groupId": {"  "}}).JoiningExistingCall())
}

func TestHintsFromQuery_DecodesTeamsLink(t *testing.T) {
	values, _ := url.ParseQuery("teamsLink=https%3A%2F%2Fteams.microsoft.com%2Fl%2Fmeetup")
	assert.Equal(t, "https://teams.microsoft.com/l/meetup", HintsFromQuery(values).TeamsLink)
}

func TestURLHints_Encode(t *testing.T) {
	assert.Equal(t, "", URLHints{}.Encode())
	assert.Equal(t, "roomId=r%201", URLHints{RoomID: "r 1"}.Encode())
	assert.Equal(t,
		"groupId=g&teamsLink=https%3A%2F%2Fteams",
		URLHints{GroupID: "g", TeamsLink: "https://teams"}.Encode(),
	)
}
