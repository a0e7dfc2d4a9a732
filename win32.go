package knet

import "github.com/shindogauge/knet/win32"

// ParseWin32 decodes a complete Kyoshin WIN32 byte stream into a Data
// value. Any structural mismatch (bad magic, invalid BCD, unknown pack
// mode, truncated stream) is surfaced unmodified as a *win32.FormatError.
func ParseWin32(b []byte) (*Data, error) {
	info, seconds, err := win32.Parse(b)
	if err != nil {
		return nil, err
	}

	data := &Data{
		Organization: info.Organization,
		Network:      info.Network,
		StationID:    info.StationID,
	}

	if info.Station != nil {
		data.StationInfo = convertStationInfo(info.Station)
	}
	if info.Hypocenter != nil {
		data.HypocenterInfo = convertHypocenterInfo(info.Hypocenter)
	}

	data.Seconds = make([]SecondBlock, len(seconds))
	for i, sb := range seconds {
		data.Seconds[i] = convertSecondBlock(sb)
	}

	return data, nil
}

func convertScaled(sf *win32.ScaledField) *ScaledNumber {
	if sf == nil {
		return nil
	}
	sn := NewScaledNumber(sf.Mantissa, sf.Scale)
	return &sn
}

func convertStationInfo(si *win32.StationInfo) *StationInfo {
	out := &StationInfo{
		Latitude:          NewScaledNumber(si.Latitude.Mantissa, si.Latitude.Scale),
		Longitude:         NewScaledNumber(si.Longitude.Mantissa, si.Longitude.Scale),
		Altitude:          NewScaledNumber(si.Altitude.Mantissa, si.Altitude.Scale),
		StationCode:       si.StationCode,
		DataStartTime:     si.DataStartTime,
		MeasurementTenths: si.MeasurementTenths,
		LastFixingTime:    si.LastFixingTime,
		FixingMethod:      si.FixingMethod,
		GeodeticSystem:    si.GeodeticSystem,
		StationType:       si.StationType,
		SampleRate:        si.SampleRate,
		ComponentCount:    si.ComponentCount,
		Redeployed:        si.Redeployed,
	}
	out.UndergroundAltitude = convertScaled(si.UndergroundAltitude)

	out.Components = make([]StationComponent, len(si.Components))
	for i, c := range si.Components {
		out.Components[i] = StationComponent{
			Organization:     string(c.Organization),
			Network:          string(c.Network),
			ChannelID:        c.ChannelID,
			ScaleNumerator:   c.ScaleNumerator,
			Gain:             c.Gain,
			Unit:             DecodeComponentUnit(c.Unit),
			ScaleDenominator: c.ScaleDenominator,
			Offset:           c.Offset,
			MeasurementRange: c.MeasurementRange,
		}
	}

	return out
}

func convertHypocenterInfo(hi *win32.HypocenterInfo) *HypocenterInfo {
	return &HypocenterInfo{
		OriginTime:     hi.OriginTime,
		Latitude:       convertScaled(hi.Latitude),
		Longitude:      convertScaled(hi.Longitude),
		Depth:          convertScaled(hi.Depth),
		Magnitude:      convertScaled(hi.Magnitude),
		GeodeticSystem: hi.GeodeticSystem,
		HypocenterType: hi.HypocenterType,
	}
}

func convertSecondBlock(sb win32.SecondBlock) SecondBlock {
	out := SecondBlock{
		SamplingStart: sb.SamplingStart,
		FrameDuration: sb.FrameDuration,
		Channels:      make([]ChannelData, len(sb.Channels)),
	}
	for i, c := range sb.Channels {
		out.Channels[i] = ChannelData{
			Organization: string(c.Organization),
			Network:      string(c.Network),
			ChannelID:    c.ChannelID,
			Data:         c.Samples,
			byteLength:   c.ByteLength,
		}
	}
	return out
}
