package aws

import (
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

const (
	DNSZoneDataSourceName = "dns_zone"
	DNSRecordTTL          = 300
)

func GenerateRoute53ZoneDataSource(zoneVariable string) *hclwrite.Block {
	zoneBlock := hclwrite.NewBlock("data", []string{"aws_route53_zone", DNSZoneDataSourceName})
	zoneBlock.Body().SetAttributeRaw("name", utils.TokensForVarReference(zoneVariable))
	zoneBlock.Body().SetAttributeValue("private_zone", cty.False)
	return zoneBlock
}

// GenerateRoute53Record renders an A record pointing at a single address reference. The
// record is always rendered; enabled only drives its count.
func GenerateRoute53Record(tfResourceName, fqdn, addressRef string, enabled bool) *hclwrite.Block {
	count := int64(0)
	if enabled {
		count = 1
	}

	recordBlock := hclwrite.NewBlock("resource", []string{"aws_route53_record", tfResourceName})
	recordBody := recordBlock.Body()
	recordBody.SetAttributeValue("count", cty.NumberIntVal(count))
	recordBody.SetAttributeRaw("zone_id", utils.TokensForResourceReference("data.aws_route53_zone."+DNSZoneDataSourceName+".zone_id"))
	recordBody.SetAttributeValue("name", cty.StringVal(fqdn))
	recordBody.SetAttributeValue("type", cty.StringVal("A"))
	recordBody.SetAttributeValue("ttl", cty.NumberIntVal(DNSRecordTTL))
	recordBody.SetAttributeRaw("records", utils.TokensForList([]hclwrite.Tokens{utils.TokensForResourceReference(addressRef)}))

	return recordBlock
}
