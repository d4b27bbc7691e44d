package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kudos/pkg/domain/model"
	"github.com/secmon-lab/kudos/pkg/domain/types"
)

func TestKudosSubmissionText(t *testing.T) {
	submission := &model.KudosSubmission{
		RecognizedUserID: "U2",
		Message:          "Nice job",
		ChannelID:        "C2",
	}
	gt.Equal(t, "<@U2> received kudos! 🎉 Nice job", submission.Text())
}

func TestKudosSubmissionValidate(t *testing.T) {
	testCases := []struct {
		name       string
		submission model.KudosSubmission
		wantErr    bool
	}{
		{
			name: "complete submission",
			submission: model.KudosSubmission{
				RecognizedUserID: "U1",
				Message:          "Great work",
				ChannelID:        "C1",
			},
		},
		{
			name: "missing user",
			submission: model.KudosSubmission{
				Message:   "Great work",
				ChannelID: "C1",
			},
			wantErr: true,
		},
		{
			name: "missing message",
			submission: model.KudosSubmission{
				RecognizedUserID: "U1",
				ChannelID:        "C1",
			},
			wantErr: true,
		},
		{
			name: "missing channel",
			submission: model.KudosSubmission{
				RecognizedUserID: "U1",
				Message:          "Great work",
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.submission.Validate()
			if tc.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagInvalidPayload))
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestRecognitionText(t *testing.T) {
	recognition := &model.Recognition{
		RecognizedUser:  "U1",
		KudosMessage:    "Great work",
		SelectedChannel: "C1",
	}
	gt.Equal(t, "<@U1> received kudos: Great work", recognition.Text())
}
