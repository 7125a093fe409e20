package gtfsrt

import "google.golang.org/protobuf/encoding/protowire"

// NYCT extends the GTFS-RT TripDescriptor with extension field 1001
// (NyctTripDescriptor). The upstream bindings don't register it, so it
// survives unmarshalling as unknown fields and is recovered here with
// protowire.
const nyctTripDescriptorField = protowire.Number(1001)

const (
	nyctTrainIDField    = protowire.Number(1)
	nyctIsAssignedField = protowire.Number(2)
)

type nyctTripDescriptor struct {
	TrainID    string
	IsAssigned bool
}

// parseNyctTripDescriptor scans a TripDescriptor's unknown fields for the
// NYCT extension. Malformed bytes report !ok rather than a partial read, so
// the caller falls back to derivable fields for the whole descriptor.
func parseNyctTripDescriptor(unknown []byte) (nyctTripDescriptor, bool) {
	for len(unknown) > 0 {
		num, typ, n := protowire.ConsumeTag(unknown)
		if n < 0 {
			return nyctTripDescriptor{}, false
		}
		unknown = unknown[n:]

		if num == nyctTripDescriptorField && typ == protowire.BytesType {
			body, n := protowire.ConsumeBytes(unknown)
			if n < 0 {
				return nyctTripDescriptor{}, false
			}
			return parseNyctFields(body)
		}

		n = protowire.ConsumeFieldValue(num, typ, unknown)
		if n < 0 {
			return nyctTripDescriptor{}, false
		}
		unknown = unknown[n:]
	}
	return nyctTripDescriptor{}, false
}

func parseNyctFields(body []byte) (nyctTripDescriptor, bool) {
	var out nyctTripDescriptor
	for len(body) > 0 {
		num, typ, n := protowire.ConsumeTag(body)
		if n < 0 {
			return nyctTripDescriptor{}, false
		}
		body = body[n:]

		switch {
		case num == nyctTrainIDField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(body)
			if n < 0 {
				return nyctTripDescriptor{}, false
			}
			out.TrainID = string(v)
			body = body[n:]
		case num == nyctIsAssignedField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(body)
			if n < 0 {
				return nyctTripDescriptor{}, false
			}
			out.IsAssigned = v != 0
			body = body[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, body)
			if n < 0 {
				return nyctTripDescriptor{}, false
			}
			body = body[n:]
		}
	}
	return out, true
}
