package metadata

// tileGlobalFields maps each tile global_metadata child to its reader.
var tileGlobalFields = map[string]func(f field, g *TileGlobal) error{
	"data_provider":     func(f field, g *TileGlobal) error { return f.text(&g.DataProvider) },
	"satellite":         func(f field, g *TileGlobal) error { return f.text(&g.Satellite) },
	"instrument":        func(f field, g *TileGlobal) error { return f.text(&g.Instrument) },
	"level1_collection": func(f field, g *TileGlobal) error { return f.text(&g.Level1Collection) },
	"ard_version":       func(f field, g *TileGlobal) error { return f.text(&g.ARDVersion) },
	"region":            func(f field, g *TileGlobal) error { return f.text(&g.Region) },
	"acquisition_date":  func(f field, g *TileGlobal) error { return f.text(&g.AcquisitionDate) },
	"product_id":        func(f field, g *TileGlobal) error { return f.text(&g.ProductID) },
	"production_date":   func(f field, g *TileGlobal) error { return f.text(&g.ProductionDate) },
	"orientation_angle": func(f field, g *TileGlobal) error { return f.float(&g.OrientationAngle) },
	"scene_count":       func(f field, g *TileGlobal) error { return f.integer(&g.SceneCount) },
	"cloud_cover":       func(f field, g *TileGlobal) error { return f.float(&g.CloudCover) },
	"cloud_shadow":      func(f field, g *TileGlobal) error { return f.float(&g.CloudShadow) },
	"snow_ice":          func(f field, g *TileGlobal) error { return f.float(&g.SnowIce) },
	"fill":              func(f field, g *TileGlobal) error { return f.float(&g.Fill) },
	"bounding_coordinates": func(f field, g *TileGlobal) error {
		_, err := f.each(map[string]func(field) error{
			"west":  floatField(&g.Bounds.West),
			"east":  floatField(&g.Bounds.East),
			"north": floatField(&g.Bounds.North),
			"south": floatField(&g.Bounds.South),
		})
		return err
	},
	"tile_grid": func(f field, g *TileGlobal) error {
		return f.attrs(map[string]attrSetter{
			"h": intAttr(&g.H),
			"v": intAttr(&g.V),
		})
	},
	"projection_information": func(f field, g *TileGlobal) error {
		return mapProjection(f, &g.Projection)
	},
}

// sceneGlobalFields maps each scene global_metadata child to its reader.
var sceneGlobalFields = map[string]func(f field, g *SceneGlobal) error{
	"data_provider":          func(f field, g *SceneGlobal) error { return f.text(&g.DataProvider) },
	"satellite":              func(f field, g *SceneGlobal) error { return f.text(&g.Satellite) },
	"instrument":             func(f field, g *SceneGlobal) error { return f.text(&g.Instrument) },
	"acquisition_date":       func(f field, g *SceneGlobal) error { return f.text(&g.AcquisitionDate) },
	"scene_center_time":      func(f field, g *SceneGlobal) error { return f.text(&g.SceneCenterTime) },
	"level1_production_date": func(f field, g *SceneGlobal) error { return f.text(&g.Level1ProductionDate) },
	"request_id":             func(f field, g *SceneGlobal) error { return f.text(&g.RequestID) },
	"scene_id":               func(f field, g *SceneGlobal) error { return f.text(&g.SceneID) },
	"product_id":             func(f field, g *SceneGlobal) error { return f.text(&g.ProductID) },
	"cpf_name":               func(f field, g *SceneGlobal) error { return f.text(&g.CPFName) },
	"lpgs_metadata_file":     func(f field, g *SceneGlobal) error { return f.text(&g.LPGSMetadataFile) },
	"geometric_rmse_model":   func(f field, g *SceneGlobal) error { return f.float(&g.GeometricRMSEModel) },
	"geometric_rmse_model_x": func(f field, g *SceneGlobal) error { return f.float(&g.GeometricRMSEModelX) },
	"geometric_rmse_model_y": func(f field, g *SceneGlobal) error { return f.float(&g.GeometricRMSEModelY) },
	"elevation_source": func(f field, g *SceneGlobal) error {
		return enumText(f, elevationNames, &g.ElevationSource)
	},
	"sensor_mode": func(f field, g *SceneGlobal) error {
		return enumText(f, sensorModeNames, &g.SensorMode)
	},
	"ephemeris_type": func(f field, g *SceneGlobal) error {
		return enumText(f, ephemerisNames, &g.EphemerisType)
	},
	"wrs": func(f field, g *SceneGlobal) error {
		return f.attrs(map[string]attrSetter{
			"system": intAttr(&g.WRS.System),
			"path":   intAttr(&g.WRS.Path),
			"row":    intAttr(&g.WRS.Row),
		})
	},
}

// paramBlocks names the parameter element of each projection kind.
var paramBlocks = map[ProjectionKind]string{
	ProjectionUTM:    "utm_proj_params",
	ProjectionAlbers: "albers_proj_params",
	ProjectionPS:     "ps_proj_params",
	ProjectionSin:    "sin_proj_params",
}

func mapProjection(f field, p *Projection) error {
	*p = NewProjection()
	kind := ProjectionUnset
	err := f.attrs(map[string]attrSetter{
		"projection": enumAttr(projectionNames, &kind),
		"datum":      enumAttr(datumNames, &p.Datum),
		"units":      stringAttr(&p.Units),
	})
	if err != nil {
		return err
	}
	if kind == ProjectionUnset {
		return f.fail(KindMissingRequiredContent, "missing projection attribute")
	}
	if kind == ProjectionGeo {
		p.Params = GeographicParams{}
	}

	// block reads one parameter element after checking it matches kind.
	block := func(blockKind ProjectionKind, read func(field) (ProjectionParams, error)) func(field) error {
		return func(b field) error {
			if blockKind != kind {
				return b.fail(KindProjectionParamMismatch, "<%s> does not apply to %s projection", b.n.Name, kind)
			}
			if p.Params != nil {
				return b.fail(KindDuplicateSection, "projection parameters given more than once")
			}
			params, err := read(b)
			if err != nil {
				return err
			}
			p.Params = params
			return nil
		}
	}

	_, err = f.each(map[string]func(field) error{
		"corner_point": func(c field) error { return mapCornerPoint(c, p) },
		"grid_origin": func(c field) error {
			return enumText(c, gridOriginNames, &p.GridOrigin)
		},
		"utm_proj_params":    block(ProjectionUTM, readUTMParams),
		"albers_proj_params": block(ProjectionAlbers, readAlbersParams),
		"ps_proj_params":     block(ProjectionPS, readPSParams),
		"sin_proj_params":    block(ProjectionSin, readSinParams),
	})
	if err != nil {
		return err
	}

	if p.Params == nil {
		return f.fail(KindMissingRequiredContent, "%s projection requires <%s>", kind, paramBlocks[kind])
	}
	return nil
}

func mapCornerPoint(c field, p *Projection) error {
	var location string
	pt := Point{X: FillFloat, Y: FillFloat}
	err := c.attrs(map[string]attrSetter{
		"location": stringAttr(&location),
		"x":        floatAttr(&pt.X),
		"y":        floatAttr(&pt.Y),
	})
	if err != nil {
		return err
	}
	switch location {
	case "UL":
		p.UL = pt
	case "LR":
		p.LR = pt
	case "":
		return c.fail(KindMissingRequiredContent, "corner_point requires a location attribute")
	default:
		return c.fail(KindUnsupportedEnumValue, "unknown corner location %q", location)
	}
	return nil
}

func readUTMParams(b field) (ProjectionParams, error) {
	var u UTMParams
	seen, err := b.each(map[string]func(field) error{
		"zone_code": func(f field) error { return f.integer(&u.Zone) },
	})
	if err != nil {
		return nil, err
	}
	return u, b.requireChildren(seen, "zone_code")
}

func readAlbersParams(b field) (ProjectionParams, error) {
	var a AlbersParams
	seen, err := b.each(map[string]func(field) error{
		"standard_parallel1": floatField(&a.StandardParallel1),
		"standard_parallel2": floatField(&a.StandardParallel2),
		"central_meridian":   floatField(&a.CentralMeridian),
		"origin_latitude":    floatField(&a.OriginLatitude),
		"false_easting":      floatField(&a.FalseEasting),
		"false_northing":     floatField(&a.FalseNorthing),
	})
	if err != nil {
		return nil, err
	}
	return a, b.requireChildren(seen, "standard_parallel1", "standard_parallel2",
		"central_meridian", "origin_latitude", "false_easting", "false_northing")
}

func readPSParams(b field) (ProjectionParams, error) {
	var ps PolarStereographicParams
	seen, err := b.each(map[string]func(field) error{
		"longitude_pole":      floatField(&ps.LongitudePole),
		"latitude_true_scale": floatField(&ps.LatitudeTrueScale),
		"false_easting":       floatField(&ps.FalseEasting),
		"false_northing":      floatField(&ps.FalseNorthing),
	})
	if err != nil {
		return nil, err
	}
	return ps, b.requireChildren(seen, "longitude_pole", "latitude_true_scale",
		"false_easting", "false_northing")
}

func readSinParams(b field) (ProjectionParams, error) {
	var s SinusoidalParams
	seen, err := b.each(map[string]func(field) error{
		"sphere_radius":    floatField(&s.SphereRadius),
		"central_meridian": floatField(&s.CentralMeridian),
		"false_easting":    floatField(&s.FalseEasting),
		"false_northing":   floatField(&s.FalseNorthing),
	})
	if err != nil {
		return nil, err
	}
	return s, b.requireChildren(seen, "sphere_radius", "central_meridian",
		"false_easting", "false_northing")
}
