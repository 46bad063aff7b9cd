package pub

import (
	"os"
	"testing"

	"github.com/linkedin/goavro"
	"github.com/stretchr/testify/require"

	"github.com/lcnem/proximax-pegzone/common/log"
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
)

// This test ensures schema or AvroMsg change are consistent and prevent marshal error in runtime

func TestMain(m *testing.M) {
	Logger = log.With("module", "pub")
	os.Exit(m.Run())
}

func TestBridgeEventsMarshaling(t *testing.T) {
	publisher := &KafkaBridgePublisher{topic: "bridge"}
	require.NoError(t, publisher.initAvroCodecs())

	info := NewBlockInfoToPublish(42, 100, []bridge.BridgeEvent{
		{
			TxHash:               "B2C4D6E8F0A1B3C5D7E9F1A2B4C6D8E0F2A3B5C7D9E1F3A4B6C8D0E2F4A5B7C9",
			Type:                 bridge.InvitationNotCosignedClaimType,
			Sender:               "cosmosvaloper1sender",
			Status:               "success",
			RefHash:              "0F3E7A1D5C9B2E4F6A8C0D1E3F5A7B9C2D4E6F8A0B1C3D5E7F9A2B4C6D8E0F1A",
			ValidatorAddress:     "cosmosvaloper1invitee",
			MainchainAddress:     "VBIXVY6I4FMPRLDAIC5RWJSGK7X2QZNO42IEV3UL",
			FirstCosignerAddress: "cosmosvaloper1cosigner",
		},
		{
			Type:                  bridge.UnpegNotCosignedClaimType,
			NotCosignedValidators: []string{"cosmosvaloper1a", "cosmosvaloper1b"},
		},
	})
	msg := BridgeEvents{Height: info.height, Timestamp: info.timestamp, NumOfMsgs: len(info.bridgeEvents), Events: info.bridgeEvents}

	bz, err := publisher.marshal(&msg, bridgeEventsTpe)
	require.NoError(t, err)

	codec, err := goavro.NewCodec(bridgeEventsSchema)
	require.NoError(t, err)
	native, _, err := codec.NativeFromBinary(bz)
	require.NoError(t, err)

	events := native.(map[string]interface{})["events"].([]interface{})
	require.Len(t, events, 2)
	first := events[0].(map[string]interface{})
	require.Equal(t, "cosmosvaloper1invitee", first["validator_address"])
	require.Equal(t, "VBIXVY6I4FMPRLDAIC5RWJSGK7X2QZNO42IEV3UL", first["mainchain_address"])
	require.Equal(t, "cosmosvaloper1cosigner", first["first_cosigner_address"])
	require.Len(t, events[1].(map[string]interface{})["not_cosigned_validators"], 2)
}

func TestMarshalUnknownType(t *testing.T) {
	publisher := &KafkaBridgePublisher{}
	require.NoError(t, publisher.initAvroCodecs())
	_, err := publisher.marshal(&BridgeEvents{}, msgType(99))
	require.Error(t, err)
}
