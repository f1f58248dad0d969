package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Packet assembly for transmit.
 *
 *		Build an AX.25 UI frame from its parts: destination,
 *		source, optional digipeater path, and information field.
 *		Everything here is address-field bookkeeping; the
 *		serialization to bits happens in hdlc_send.go.
 *
 * Reference:	AX.25 Amateur Packet-Radio Link-Layer Protocol
 *		Version 2.2, section 3.12, Address-Field Encoding.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"strings"
)

type ax25_addr_t struct {
	call string /* 1 .. 6 characters, uppercase letters and digits. */
	ssid int    /* 0 .. 15 */
}

type packet_t struct {
	dest  ax25_addr_t
	src   ax25_addr_t
	digis []ax25_addr_t
	info  []byte
}

/*------------------------------------------------------------------
 *
 * Name:	ax25_addr_from_text
 *
 * Purpose:	Parse a callsign of the form "CALL" or "CALL-SSID".
 *
 * Inputs:	text	- e.g. "N0CALL", "wide1-1".  Lowercase is
 *			  folded to uppercase.
 *
 * Returns:	Parsed address, or ErrInvalidCallsign.
 *
 *------------------------------------------------------------------*/

func ax25_addr_from_text(text string) (ax25_addr_t, error) {

	var addr ax25_addr_t

	var call = strings.ToUpper(strings.TrimSpace(text))

	if before, after, found := strings.Cut(call, "-"); found {
		call = before
		var ssid, err = strconv.Atoi(after)
		if err != nil {
			return addr, fmt.Errorf("%w: bad SSID in %q", ErrInvalidCallsign, text)
		}
		if ssid < 0 || ssid > 15 {
			return addr, fmt.Errorf("%w: SSID %d out of range 0-15", ErrInvalidCallsign, ssid)
		}
		addr.ssid = ssid
	}

	if len(call) == 0 {
		return addr, fmt.Errorf("%w: empty callsign", ErrInvalidCallsign)
	}
	if len(call) > 6 {
		return addr, fmt.Errorf("%w: %q longer than 6 characters", ErrInvalidCallsign, call)
	}
	for _, c := range call {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return addr, fmt.Errorf("%w: character %q in %q", ErrInvalidCallsign, c, call)
		}
	}

	addr.call = call
	return addr, nil
}

/*------------------------------------------------------------------
 *
 * Name:	ax25_u_frame
 *
 * Purpose:	Construct a UI frame ready for packing.
 *
 * Inputs:	src	- Source callsign, e.g. "N0CALL-9".
 *
 *		dest	- Destination, e.g. "APRS".
 *
 *		path	- Comma separated digipeater path, e.g.
 *			  "WIDE1-1,WIDE2-1".  Empty for none.
 *
 *		info	- Information field, arbitrary bytes.
 *
 *		info_max - Reject info longer than this.
 *			   0 means use DEFAULT_INFO_MAX.
 *
 * Returns:	Packet object or one of the validation errors.
 *
 *------------------------------------------------------------------*/

func ax25_u_frame(src string, dest string, path string, info []byte, info_max int) (*packet_t, error) {

	if info_max == 0 {
		info_max = DEFAULT_INFO_MAX
	}

	var pp = &packet_t{}
	var err error

	pp.src, err = ax25_addr_from_text(src)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	pp.dest, err = ax25_addr_from_text(dest)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	if path != "" {
		for _, digi := range strings.Split(path, ",") {
			var da, daErr = ax25_addr_from_text(digi)
			if daErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPath, daErr)
			}
			pp.digis = append(pp.digis, da)
		}
		if len(pp.digis) > AX25_MAX_REPEATERS {
			return nil, fmt.Errorf("%w: %d digipeaters, maximum is %d", ErrInvalidPath, len(pp.digis), AX25_MAX_REPEATERS)
		}
	}

	if len(info) > info_max {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrOversizedInfo, len(info), info_max)
	}

	pp.info = append([]byte(nil), info...)
	return pp, nil
}

/*------------------------------------------------------------------
 *
 * Name:	ax25_pack
 *
 * Purpose:	Flatten the packet object to the transmitted frame bytes.
 *
 * Returns:	[dest(7)] [src(7)] [digi(7n)] [control] [pid] [info] [fcs lo] [fcs hi]
 *
 * Description:	Each address is the callsign padded with spaces to 6
 *		characters, every byte shifted left one bit.  The 7th
 *		byte carries the SSID in bits 1-4 with the two reserved
 *		bits set.  The low bit is set on the final address only.
 *		The has-been-repeated bit (bit 7) is always 0 at
 *		transmit time.
 *
 *------------------------------------------------------------------*/

func (pp *packet_t) ax25_pack() []byte {

	var fbuf []byte

	var put_addr = func(addr ax25_addr_t, last bool) {
		var padded = fmt.Sprintf("%-6s", addr.call)
		for i := 0; i < 6; i++ {
			fbuf = append(fbuf, padded[i]<<1)
		}
		var ssid_byte = byte(addr.ssid)<<1 | 0x60 /* reserved bits */
		if last {
			ssid_byte |= 0x01
		}
		fbuf = append(fbuf, ssid_byte)
	}

	put_addr(pp.dest, false)
	put_addr(pp.src, len(pp.digis) == 0)
	for i, digi := range pp.digis {
		put_addr(digi, i == len(pp.digis)-1)
	}

	fbuf = append(fbuf, AX25_UI_FRAME, AX25_PID_NO_LAYER_3)
	fbuf = append(fbuf, pp.info...)

	var fcs = fcs_calc(fbuf)
	fbuf = append(fbuf, byte(fcs&0xff), byte(fcs>>8))

	return fbuf
}

/*------------------------------------------------------------------
 *
 * Name:	ax25_format_addrs
 *
 * Purpose:	Human readable "SRC>DEST,DIGI,DIGI:" for logging.
 *
 *------------------------------------------------------------------*/

func (pp *packet_t) ax25_format_addrs() string {

	var sb strings.Builder
	sb.WriteString(pp.src.String())
	sb.WriteByte('>')
	sb.WriteString(pp.dest.String())
	for _, digi := range pp.digis {
		sb.WriteByte(',')
		sb.WriteString(digi.String())
	}
	sb.WriteByte(':')
	return sb.String()
}

func (a ax25_addr_t) String() string {
	if a.ssid != 0 {
		return fmt.Sprintf("%s-%d", a.call, a.ssid)
	}
	return a.call
}
