package metadata

import (
	"strconv"
	"strings"
)

func mapBandFields(f field, b *Band) error {
	err := f.attrs(map[string]attrSetter{
		"product":        stringAttr(&b.Product),
		"source":         stringAttr(&b.Source),
		"name":           stringAttr(&b.Name),
		"category":       stringAttr(&b.Category),
		"data_type":      enumAttr(dataTypeNames, &b.DataType),
		"nlines":         intAttr(&b.NLines),
		"nsamps":         intAttr(&b.NSamps),
		"fill_value":     int64Attr(&b.FillValue),
		"saturate_value": intAttr(&b.SaturateValue),
		"scale_factor":   floatAttr(&b.ScaleFactor),
		"add_offset":     floatAttr(&b.AddOffset),
	})
	if err != nil {
		return err
	}

	_, err = f.each(map[string]func(field) error{
		"short_name":      textField(&b.ShortName),
		"long_name":       textField(&b.LongName),
		"file_name":       textField(&b.FileName),
		"data_units":      textField(&b.DataUnits),
		"app_version":     textField(&b.AppVersion),
		"production_date": textField(&b.ProductionDate),
		"resample_method": func(c field) error {
			return enumText(c, resampleNames, &b.ResampleMethod)
		},
		"pixel_size": func(c field) error {
			return c.attrs(map[string]attrSetter{
				"x":     floatAttr(&b.PixelSizeX),
				"y":     floatAttr(&b.PixelSizeY),
				"units": stringAttr(&b.PixelUnits),
			})
		},
		"valid_range": func(c field) error {
			return c.attrs(map[string]attrSetter{
				"min": floatAttr(&b.ValidMin),
				"max": floatAttr(&b.ValidMax),
			})
		},
		"bitmap_description": func(c field) error { return mapBits(c, b) },
		"class_values":       func(c field) error { return mapClasses(c, b) },
	})
	return err
}

// mapBits reads <bit num="i"> entries. Every bit from 0 to the highest
// listed number needs exactly one description; entries may appear in any
// order and are stored by number.
func mapBits(f field, b *Band) error {
	byNum := make(map[int]string)
	for _, c := range f.n.Elements() {
		if f.t.foreign(c) {
			continue
		}
		bit := field{n: c, t: f.t}
		if c.Name != "bit" {
			f.t.log.Warn("unknown element <%s> in <%s> (line %d); skipping", c.Name, f.n.Name, c.Line)
			continue
		}

		raw, ok := c.Attr("num")
		if !ok {
			return bit.fail(KindMissingRequiredContent, "bit requires a num attribute")
		}
		num, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || num < 0 {
			return bit.fail(KindInvalidBitmap, "bit num=%q is not a bit number", raw)
		}
		if _, dup := byNum[num]; dup {
			return bit.fail(KindInvalidBitmap, "bit %d is described more than once", num)
		}

		var desc string
		if err := bit.text(&desc); err != nil {
			return err
		}
		byNum[num] = desc
	}

	bits := make([]string, len(byNum))
	for i := range bits {
		desc, ok := byNum[i]
		if !ok {
			return f.fail(KindInvalidBitmap, "bit %d has no description (%d bits listed)", i, len(byNum))
		}
		bits[i] = desc
	}
	if len(bits) > 0 {
		b.Bits = bits
	}
	return nil
}

// mapClasses reads <class num="code"> entries in document order.
func mapClasses(f field, b *Band) error {
	var classes []ClassValue
	for _, c := range f.n.Elements() {
		if f.t.foreign(c) {
			continue
		}
		cls := field{n: c, t: f.t}
		if c.Name != "class" {
			f.t.log.Warn("unknown element <%s> in <%s> (line %d); skipping", c.Name, f.n.Name, c.Line)
			continue
		}

		raw, ok := c.Attr("num")
		if !ok {
			return cls.fail(KindMissingRequiredContent, "class requires a num attribute")
		}
		code, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return cls.fail(KindInvalidValue, "class num=%q is not an integer", raw)
		}

		v := ClassValue{Code: code}
		if err := cls.text(&v.Description); err != nil {
			return err
		}
		classes = append(classes, v)
	}
	if len(classes) > 0 {
		b.Classes = classes
	}
	return nil
}
