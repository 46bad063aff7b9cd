package pub

const (
	bridgeEventsSchema = `
		{
			"type": "record",
			"name": "BridgeEvents",
			"namespace": "io.proximax.pegzone.avro",
			"fields": [
				{ "name": "height", "type": "long" },
				{ "name": "timestamp", "type": "long" },
				{ "name": "numOfMsgs", "type": "int" },
				{ "name": "events", "type": {
					"type": "array",
					"items": {
						"type": "record",
						"name": "BridgeEvent",
						"namespace": "io.proximax.pegzone.avro",
						"fields": [
							{ "name": "tx_hash", "type": "string" },
							{ "name": "type", "type": "string" },
							{ "name": "sender", "type": "string" },
							{ "name": "status", "type": "string" },
							{ "name": "ref_hash", "type": "string" },
							{ "name": "sequence", "type": "long" },
							{ "name": "to_address", "type": "string" },
							{ "name": "amount", "type": "string" },
							{ "name": "validator_address", "type": "string" },
							{ "name": "mainchain_address", "type": "string" },
							{ "name": "first_cosigner_address", "type": "string" },
							{ "name": "not_cosigned_validators", "type": { "type": "array", "items": "string" } }
						]
					}
				}}
			]
		}
	`
)
